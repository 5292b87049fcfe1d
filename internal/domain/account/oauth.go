package account

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// OAuthRefresher implements TokenRefresher on top of an oauth2 config's
// refresh-grant token source.
type OAuthRefresher struct {
	config *oauth2.Config
}

func NewOAuthRefresher(config *oauth2.Config) *OAuthRefresher {
	return &OAuthRefresher{config: config}
}

func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (*Credential, error) {
	source := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, err
	}
	return CredentialFromToken(token)
}

// CredentialFromToken converts an oauth2 token into the stored credential
// shape. Providers that do not rotate the refresh token return it empty;
// callers keep the previous one in that case.
func CredentialFromToken(token *oauth2.Token) (*Credential, error) {
	if token.AccessToken == "" {
		return nil, errors.New("token response carried no access token")
	}
	cred := &Credential{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.Expiry,
	}
	if token.RefreshToken != "" {
		refresh := token.RefreshToken
		cred.RefreshToken = &refresh
	}
	return cred, nil
}
