package devserver

import (
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// mintToken creates the HS256 access token the platform issues: sub is the
// user id, exp the absolute expiry.
func (s *Server) mintToken(userID int64, now time.Time) (string, error) {
	claims := jwtlib.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": now.Add(s.tokenExpiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "[Server.mintToken] sign")
	}
	return signed, nil
}

// parseToken validates a bearer token and returns the user id it carries.
func (s *Server) parseToken(raw string) (int64, error) {
	token, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(s.secret), nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithTimeFunc(s.now))
	if err != nil {
		return 0, errors.Wrap(err, "[Server.parseToken] parse")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, errors.Wrap(err, "[Server.parseToken] subject")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "[Server.parseToken] subject not a user id")
	}
	return userID, nil
}
