package auth

import (
	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
)

// AuthResult is returned by Login and Refresh operations.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	User         *domain.User
}

// BonusAward describes the signup bonus granted during Signup.
type BonusAward struct {
	Points int
}

// SignupResult extends AuthResult with the outcome of the best-effort signup
// side effects. Bonus is nil when no bonus was awarded; Migration is nil when
// no guest items were adopted.
type SignupResult struct {
	AuthResult
	Bonus     *BonusAward
	Migration *saveditems.MigrateResult
}

// LoginResult extends AuthResult with the outcome of best-effort guest item
// adoption during login.
type LoginResult struct {
	AuthResult
	Migration *saveditems.MigrateResult
}
