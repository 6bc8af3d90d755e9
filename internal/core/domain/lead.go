package domain

import (
	"slices"
	"strings"
	"time"
)

// LeadStatus is the position of a lead in the follow-up funnel.
type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadQualified    LeadStatus = "qualified"
	LeadOpportunity  LeadStatus = "opportunity"
	LeadConverted    LeadStatus = "converted"
	LeadRejected     LeadStatus = "rejected"
	LeadUnresponsive LeadStatus = "unresponsive"
	LeadDoNotContact LeadStatus = "do_not_contact"
)

// LeadStatuses lists every status in funnel order.
var LeadStatuses = []LeadStatus{
	LeadNew, LeadContacted, LeadQualified, LeadOpportunity,
	LeadConverted, LeadRejected, LeadUnresponsive, LeadDoNotContact,
}

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	return slices.Contains(LeadStatuses, s)
}

// NoteType is the channel of a contact note.
type NoteType string

const (
	NoteCall    NoteType = "call"
	NoteEmail   NoteType = "email"
	NoteSMS     NoteType = "sms"
	NoteMeeting NoteType = "meeting"
	NoteText    NoteType = "note"
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	switch t {
	case NoteCall, NoteEmail, NoteSMS, NoteMeeting, NoteText:
		return true
	}
	return false
}

// ContactNote records one interaction with a lead.
type ContactNote struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    NoteType  `json:"type"`
	Content string    `json:"content"`
	Agent   string    `json:"agent"`
	Outcome string    `json:"outcome,omitempty"`
}

// Lead is a contact captured by a campaign's lead form.
type Lead struct {
	ID              string            `json:"id"`
	CampaignID      string            `json:"campaign_id"`
	CampaignName    string            `json:"campaign_name"`
	Status          LeadStatus        `json:"status"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone,omitempty"`
	Company         string            `json:"company,omitempty"`
	Source          string            `json:"source"`
	CreatedAt       time.Time         `json:"created_at"`
	LastContactedAt *time.Time        `json:"last_contacted_at,omitempty"`
	AIScore         int               `json:"ai_score"`
	AIInsights      []string          `json:"ai_insights"`
	ContactAttempts int               `json:"contact_attempts"`
	NextAction      string            `json:"next_action,omitempty"`
	AssignedAgent   string            `json:"assigned_agent,omitempty"`
	FormData        map[string]string `json:"form_data"`
	Notes           []ContactNote     `json:"notes"`
	Tags            []string          `json:"tags"`
}

// FullName joins first and last name.
func (l Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// Validate checks the fields a captured lead must carry.
func (l Lead) Validate() error {
	var fields []string
	if strings.TrimSpace(l.CampaignID) == "" {
		fields = append(fields, "campaign_id")
	}
	if strings.TrimSpace(l.Email) == "" || !strings.Contains(l.Email, "@") {
		fields = append(fields, "email")
	}
	if l.Status != "" && !l.Status.Valid() {
		fields = append(fields, "status")
	}
	if l.AIScore < 0 || l.AIScore > 100 {
		fields = append(fields, "ai_score")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SetStatus moves the lead to status and stamps the contact time.
func (l *Lead) SetStatus(status LeadStatus, now time.Time) {
	l.Status = status
	l.LastContactedAt = &now
}

// AddNote appends note. Every note except a plain text note counts as a
// contact attempt.
func (l *Lead) AddNote(note ContactNote) {
	l.Notes = append(l.Notes, note)
	if note.Type != NoteText {
		l.ContactAttempts++
		date := note.Date
		l.LastContactedAt = &date
	}
}
