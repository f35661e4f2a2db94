// internal/platform/admin.go
package platform

import (
	"context"
	"fmt"
)

// Resource service layer: one typed method per backend capability. Methods
// validate nothing locally; they forward parameters and unwrap the envelope.

// DashboardStats fetches the platform-wide aggregate block.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	if _, err := c.get(ctx, "/admin/dashboard", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListUsers pages through platform users.
func (c *Client) ListUsers(ctx context.Context, p UserListParams) ([]User, *Pagination, error) {
	var users []User
	pg, err := c.get(ctx, "/admin/users", p.values(), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, pg, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if _, err := c.get(ctx, "/admin/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserStatus suspends or reactivates a user.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, req UpdateUserStatusRequest) (*User, error) {
	var u User
	if err := c.patch(ctx, fmt.Sprintf("/admin/users/%s/status", id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListEscorts pages through escort listings.
func (c *Client) ListEscorts(ctx context.Context, p EscortListParams) ([]Escort, *Pagination, error) {
	var escorts []Escort
	pg, err := c.get(ctx, "/admin/escorts", p.values(), &escorts)
	if err != nil {
		return nil, nil, err
	}
	return escorts, pg, nil
}

// GetEscort fetches one escort listing by id.
func (c *Client) GetEscort(ctx context.Context, id string) (*Escort, error) {
	var e Escort
	if _, err := c.get(ctx, "/admin/escorts/"+id, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// VerifyEscort grants or revokes an escort's verified badge.
func (c *Client) VerifyEscort(ctx context.Context, id string, req VerifyEscortRequest) (*Escort, error) {
	var e Escort
	if err := c.post(ctx, fmt.Sprintf("/admin/escorts/%s/verify", id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPayments pages through payments.
func (c *Client) ListPayments(ctx context.Context, p PaymentListParams) ([]Payment, *Pagination, error) {
	var payments []Payment
	pg, err := c.get(ctx, "/admin/payments", p.values(), &payments)
	if err != nil {
		return nil, nil, err
	}
	return payments, pg, nil
}

// RefundPayment moves a completed payment to REFUNDED.
func (c *Client) RefundPayment(ctx context.Context, id string, req RefundPaymentRequest) (*Payment, error) {
	var p Payment
	if err := c.post(ctx, fmt.Sprintf("/admin/payments/%s/refund", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListWithdrawals pages through withdrawal requests.
func (c *Client) ListWithdrawals(ctx context.Context, p WithdrawalListParams) ([]Withdrawal, *Pagination, error) {
	var ws []Withdrawal
	pg, err := c.get(ctx, "/admin/withdrawals", p.values(), &ws)
	if err != nil {
		return nil, nil, err
	}
	return ws, pg, nil
}

// ProcessWithdrawal completes or rejects a pending withdrawal.
func (c *Client) ProcessWithdrawal(ctx context.Context, id string, req ProcessWithdrawalRequest) (*Withdrawal, error) {
	var w Withdrawal
	if err := c.post(ctx, fmt.Sprintf("/admin/withdrawals/%s/process", id), req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListReferrals pages through referral rewards.
func (c *Client) ListReferrals(ctx context.Context, p ReferralListParams) ([]Referral, *Pagination, error) {
	var rs []Referral
	pg, err := c.get(ctx, "/admin/referrals", p.values(), &rs)
	if err != nil {
		return nil, nil, err
	}
	return rs, pg, nil
}

// ApproveReferral approves or rejects a referral reward.
func (c *Client) ApproveReferral(ctx context.Context, id string, req ApproveReferralRequest) (*Referral, error) {
	var ref Referral
	if err := c.post(ctx, fmt.Sprintf("/admin/referrals/%s/approve", id), req, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListReviews pages through escort reviews.
func (c *Client) ListReviews(ctx context.Context, p ReviewListParams) ([]Review, *Pagination, error) {
	var rs []Review
	pg, err := c.get(ctx, "/admin/reviews", p.values(), &rs)
	if err != nil {
		return nil, nil, err
	}
	return rs, pg, nil
}

// SetReviewVisibility hides or shows a review.
func (c *Client) SetReviewVisibility(ctx context.Context, id string, req SetReviewVisibilityRequest) (*Review, error) {
	var rv Review
	if err := c.put(ctx, fmt.Sprintf("/admin/reviews/%s/visibility", id), req, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}
