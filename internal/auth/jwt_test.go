package auth

import (
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	pair, err := Issue("65f0c2", RoleFaculty, "collegems", "secret", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}
	if !pair.RefreshExp.After(pair.AccessExp) {
		t.Errorf("refresh expiry %v not after access expiry %v", pair.RefreshExp, pair.AccessExp)
	}

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := Parse(token, "secret", "collegems")
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if claims.Subject != "65f0c2" || claims.Role != RoleFaculty {
			t.Errorf("claims = %q/%q", claims.Subject, claims.Role)
		}
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue("65f0c2", RoleAdmin, "collegems", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "other-secret", "collegems"); err == nil {
		t.Error("token signed with a different key was accepted")
	}
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	pair, err := Issue("65f0c2", RoleStudent, "someone-else", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "secret", "collegems"); err == nil {
		t.Error("token from a foreign issuer was accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	pair, err := Issue("65f0c2", RoleStudent, "collegems", "secret", -time.Minute, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "secret", "collegems"); err == nil {
		t.Error("expired token was accepted")
	}
}
