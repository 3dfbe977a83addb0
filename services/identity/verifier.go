package identity

import (
	"context"
	"errors"
	"time"

	"styledecor/utils"

	"firebase.google.com/go/v4/auth"
)

const invalidCredentialMsg = "missing or invalid credential"

// TokenVerifier turns a bearer credential into a verified email address.
type TokenVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client  *auth.Client
	timeout time.Duration
}

func NewFirebaseVerifier(client *auth.Client, timeout time.Duration) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, timeout: timeout}
}

func (v *FirebaseVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", classifyVerifyError(ctx, err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", utils.NewUnauthorized(invalidCredentialMsg)
	}
	return email, nil
}

// classifyVerifyError separates rejected credentials from an unreachable identity provider.
func classifyVerifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return utils.NewUpstream("identity provider timed out", err)
	}
	if auth.IsIDTokenExpired(err) || auth.IsIDTokenInvalid(err) || auth.IsIDTokenRevoked(err) || auth.IsUserDisabled(err) {
		return utils.NewUnauthorized(invalidCredentialMsg)
	}
	return utils.NewUpstream("identity provider unavailable", err)
}
