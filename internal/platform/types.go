// internal/platform/types.go
package platform

import (
	"net/url"
	"strconv"
	"time"
)

// Pagination is the paging block the backend attaches to list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// User roles as the backend reports them.
const (
	RoleDatingUser = "DATING_USER"
	RoleEscort     = "ESCORT"
	RoleHookupUser = "HOOKUP_USER"
	RoleAdmin      = "ADMIN"
)

// Payment lifecycle states.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

// Payment types.
const (
	PaymentDatingSubscription = "DATING_SUBSCRIPTION"
	PaymentVIPSubscription    = "VIP_SUBSCRIPTION"
	PaymentUnlockEscort       = "UNLOCK_ESCORT"
)

// Withdrawal and referral lifecycle states (shared vocabulary).
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusRejected  = "REJECTED"
)

// Escort moderation states.
const (
	ModerationPending   = "PENDING"
	ModerationApproved  = "APPROVED"
	ModerationRejected  = "REJECTED"
	ModerationSuspended = "SUSPENDED"
)

// Admin is the session subject: the signed-in dashboard operator.
type Admin struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Session is what the auth endpoints return on login, register and refresh.
type Session struct {
	Admin        Admin  `json:"admin"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is a platform member of any vertical (dating, escort, hookup).
type User struct {
	ID                        string     `json:"id"`
	Email                     string     `json:"email"`
	Phone                     string     `json:"phone"`
	FirstName                 string     `json:"firstName"`
	LastName                  string     `json:"lastName"`
	DisplayName               string     `json:"displayName,omitempty"`
	Role                      string     `json:"role"`
	IsActive                  bool       `json:"isActive"`
	WalletBalance             float64    `json:"walletBalance"`
	ReferralCode              string     `json:"referralCode,omitempty"`
	ReferredBy                string     `json:"referredBy,omitempty"`
	DatingSubscriptionExpires *time.Time `json:"datingSubscriptionExpiresAt,omitempty"`
	CreatedAt                 time.Time  `json:"createdAt"`
	UpdatedAt                 time.Time  `json:"updatedAt"`
}

// Name returns the best display name for a user.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// EscortLocation describes where an escort operates.
type EscortLocation struct {
	City    string   `json:"city"`
	Regions []string `json:"regions"`
}

// EscortService is a named service an escort offers.
type EscortService struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EscortPricedService is a service with an attached price.
type EscortPricedService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// EscortPricing holds an escort's rate card.
type EscortPricing struct {
	HourlyRate float64               `json:"hourlyRate"`
	Services   []EscortPricedService `json:"services,omitempty"`
}

// EscortAvailability holds working days and hours.
type EscortAvailability struct {
	Days  []string `json:"days"`
	Hours string   `json:"hours"`
}

// EscortOwner is the trimmed user record embedded in escort listings.
type EscortOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
}

// Escort is an escort listing awaiting or holding verification.
type Escort struct {
	ID               string              `json:"id"`
	UserID           string              `json:"userId"`
	User             *EscortOwner        `json:"user,omitempty"`
	Name             string              `json:"name"`
	Age              int                 `json:"age,omitempty"`
	About            string              `json:"about"`
	ContactPhone     string              `json:"contactPhone"`
	Locations        *EscortLocation     `json:"locations,omitempty"`
	Photos           []string            `json:"photos"`
	Services         []EscortService     `json:"services,omitempty"`
	Pricing          *EscortPricing      `json:"pricing,omitempty"`
	Availability     *EscortAvailability `json:"availability,omitempty"`
	Languages        []string            `json:"languages,omitempty"`
	Verified         bool                `json:"verified"`
	VIPStatus        bool                `json:"vipStatus"`
	VIPExpiresAt     *time.Time          `json:"vipExpiresAt,omitempty"`
	ModerationStatus string              `json:"moderationStatus"`
	UnlockPrice      float64             `json:"unlockPrice"`
	ExperienceYears  int                 `json:"experienceYears,omitempty"`
	Tags             []string            `json:"tags,omitempty"`
	TotalViews       int                 `json:"totalViews"`
	AverageRating    float64             `json:"averageRating"`
	ReviewCount      int                 `json:"reviewCount"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        *time.Time          `json:"updatedAt,omitempty"`
}

// Payment is a money-in transaction (subscription or unlock purchase).
type Payment struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId,omitempty"`
	User               *User      `json:"user,omitempty"`
	Amount             float64    `json:"amount"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Phone              string     `json:"phone"`
	MpesaReceiptNumber string     `json:"mpesaReceiptNumber,omitempty"`
	MpesaTransactionID string     `json:"mpesaTransactionId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// Withdrawal is a money-out request from a user's wallet.
type Withdrawal struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	User               *User      `json:"user,omitempty"`
	Amount             float64    `json:"amount"`
	Status             string     `json:"status"`
	Phone              string     `json:"phone"`
	MpesaTransactionID string     `json:"mpesaTransactionId,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	ProcessedAt        *time.Time `json:"processedAt,omitempty"`
	ProcessedBy        string     `json:"processedBy,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Referral is a referral-program reward awaiting admin review.
type Referral struct {
	ID             string     `json:"id"`
	ReferrerUserID string     `json:"referrerUserId"`
	Referrer       *User      `json:"referrer,omitempty"`
	ReferredUserID string     `json:"referredUserId"`
	Referred       *User      `json:"referred,omitempty"`
	PaymentID      string     `json:"paymentId,omitempty"`
	Payment        *Payment   `json:"payment,omitempty"`
	CodeUsed       string     `json:"codeUsed"`
	RewardAmount   float64    `json:"rewardAmount"`
	Level          int        `json:"level"`
	Status         string     `json:"status"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy     string     `json:"approvedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Review is a user review of an escort.
type Review struct {
	ID        string    `json:"id"`
	EscortID  string    `json:"escortId"`
	Escort    *Escort   `json:"escort,omitempty"`
	UserID    string    `json:"userId"`
	User      *User     `json:"user,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DashboardStats is the platform-wide aggregate block for the dashboard page.
type DashboardStats struct {
	Users struct {
		Total       int `json:"total"`
		Escorts     int `json:"escorts"`
		DatingUsers int `json:"datingUsers"`
		HookupUsers int `json:"hookupUsers"`
	} `json:"users"`
	Payments struct {
		Count        int     `json:"count"`
		TotalRevenue float64 `json:"totalRevenue"`
	} `json:"payments"`
	Pending struct {
		Verifications int `json:"verifications"`
		Withdrawals   int `json:"withdrawals"`
	} `json:"pending"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| List parameters                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// setInt adds a positive integer parameter; zero values are omitted.
func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

// setStr adds a non-empty string parameter; empty strings are omitted so the
// backend never sees search="" and the like.
func setStr(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

// setBool adds an optional boolean parameter; nil means "no filter".
func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

// UserListParams filters GET /admin/users.
type UserListParams struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

func (p UserListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "role", p.Role)
	setStr(v, "search", p.Search)
	return v
}

// EscortListParams filters GET /admin/escorts.
type EscortListParams struct {
	Page      int
	Limit     int
	Verified  *bool
	VIPStatus *bool
	Search    string
}

func (p EscortListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setBool(v, "verified", p.Verified)
	setBool(v, "vipStatus", p.VIPStatus)
	setStr(v, "search", p.Search)
	return v
}

// PaymentListParams filters GET /admin/payments.
type PaymentListParams struct {
	Page   int
	Limit  int
	Type   string
	Status string
	Search string
}

func (p PaymentListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "type", p.Type)
	setStr(v, "status", p.Status)
	setStr(v, "search", p.Search)
	return v
}

// WithdrawalListParams filters GET /admin/withdrawals.
type WithdrawalListParams struct {
	Page   int
	Limit  int
	Status string
	UserID string
}

func (p WithdrawalListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "status", p.Status)
	setStr(v, "userId", p.UserID)
	return v
}

// ReferralListParams filters GET /admin/referrals.
type ReferralListParams struct {
	Page           int
	Limit          int
	Status         string
	ReferrerUserID string
	Level          int
}

func (p ReferralListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "status", p.Status)
	setStr(v, "referrerUserId", p.ReferrerUserID)
	setInt(v, "level", p.Level)
	return v
}

// ReviewListParams filters GET /admin/reviews.
type ReviewListParams struct {
	Page     int
	Limit    int
	EscortID string
	UserID   string
	Visible  *bool
}

func (p ReviewListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "escortId", p.EscortID)
	setStr(v, "userId", p.UserID)
	setBool(v, "visible", p.Visible)
	return v
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mutation request bodies                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// UpdateUserStatusRequest suspends or reactivates a user.
type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// VerifyEscortRequest grants or revokes verification.
type VerifyEscortRequest struct {
	Verified bool   `json:"verified"`
	Notes    string `json:"notes,omitempty"`
}

// ProcessWithdrawalRequest completes or rejects a withdrawal. An empty
// transaction id is omitted from the wire body.
type ProcessWithdrawalRequest struct {
	Status             string `json:"status"`
	MpesaTransactionID string `json:"mpesaTransactionId,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// ApproveReferralRequest approves or rejects a referral reward.
type ApproveReferralRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}

// RefundPaymentRequest refunds a completed payment.
type RefundPaymentRequest struct {
	Notes string `json:"notes,omitempty"`
}

// SetReviewVisibilityRequest hides or shows a review.
type SetReviewVisibilityRequest struct {
	Visible bool `json:"visible"`
}

// LoginRequest authenticates an admin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new admin account; SecretKey gates registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	SecretKey string `json:"secretKey"`
}
