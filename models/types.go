package models

import "time"

// Campaign approval status constants (administrator phase)
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DAO approval status constants (quorum phase)
const (
	DaoStatusPending  = "pending"
	DaoStatusApproved = "dao_approved"
	DaoStatusRejected = "dao_rejected"
)

// Vote decision constants
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Member role constants
const (
	RoleDaoMember = "dao_member"
	RoleAdmin     = "admin"
	RoleCharity   = "charity"
)

// Member status constants
const (
	MemberStatusActive          = "active"
	MemberStatusPendingApproval = "pending_approval"
	MemberStatusInactive        = "inactive"
)

// Request types

type CreateCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goal_amount"`
}

type SubmitVoteRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

type AdminRejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// Response types

type CreateCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
}

type SubmitVoteResponse struct {
	Vote     Vote      `json:"vote"`
	Tally    VoteTally `json:"tally"`
	Campaign Campaign  `json:"campaign"`
}

type CampaignDetailResponse struct {
	Campaign Campaign  `json:"campaign"`
	Tally    VoteTally `json:"tally"`
	MyVote   *Vote     `json:"my_vote,omitempty"`
}

type PendingCampaignsResponse struct {
	Campaigns []PendingCampaign `json:"campaigns"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

type MyVotesResponse struct {
	Votes []VoteHistoryEntry `json:"votes"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type AdminDecisionResponse struct {
	Campaign Campaign `json:"campaign"`
}

// Domain types

type Campaign struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	CharityID         string     `json:"charity_id"`
	GoalAmount        int64      `json:"goal_amount"`
	ApprovalStatus    string     `json:"approval_status"`
	DaoApprovalStatus string     `json:"dao_approval_status"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	FinalizedAt       *time.Time `json:"finalized_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Vote struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	MemberID   string    `json:"member_id"`
	Decision   string    `json:"decision"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type DaoMember struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	JoinedAt    time.Time `json:"joined_at"`
}

// VoteTally is derived from the vote ledger; it is never trusted as
// independently-true state.
type VoteTally struct {
	TotalVotes   int     `json:"total_votes"`
	ApproveVotes int     `json:"approve_votes"`
	RejectVotes  int     `json:"reject_votes"`
	ApprovalRate float64 `json:"approval_rate"`
}

// PendingCampaign is a campaign awaiting quorum, decorated with its tally
// and how many more votes it needs.
type PendingCampaign struct {
	Campaign          Campaign  `json:"campaign"`
	Tally             VoteTally `json:"tally"`
	VotesNeeded       int       `json:"votes_needed"`
	GoalAmountDisplay string    `json:"goal_amount_display"`
}

// VoteHistoryEntry joins a member's vote with a campaign summary.
type VoteHistoryEntry struct {
	Vote              Vote   `json:"vote"`
	CampaignTitle     string `json:"campaign_title"`
	DaoApprovalStatus string `json:"dao_approval_status"`
	ApprovalStatus    string `json:"approval_status"`
}

// Statistics types

type GlobalStatistics struct {
	PendingCampaigns  int     `json:"pending_campaigns"`
	DaoApproved       int     `json:"dao_approved"`
	DaoRejected       int     `json:"dao_rejected"`
	TotalVotes        int     `json:"total_votes"`
	ApproveVotes      int     `json:"approve_votes"`
	RejectVotes       int     `json:"reject_votes"`
	ApprovalRate      float64 `json:"approval_rate"`
	ActiveMembers     int     `json:"active_members"`
	ParticipationRate float64 `json:"participation_rate"`
}

type MemberStatistics struct {
	MemberID          string  `json:"member_id"`
	TotalVotes        int     `json:"total_votes"`
	ApproveVotes      int     `json:"approve_votes"`
	RejectVotes       int     `json:"reject_votes"`
	ApprovalRate      float64 `json:"approval_rate"`
	ParticipationRate float64 `json:"participation_rate"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DuplicateVoteResponse carries the previously recorded vote so a client
// retrying after a timeout can see that its write landed.
type DuplicateVoteResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	ExistingVote Vote   `json:"existing_vote"`
}
