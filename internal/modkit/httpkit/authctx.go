package httpkit

import (
	"net/http"

	perrs "bukatsu/internal/platform/errors"
	pnet "bukatsu/internal/platform/net"
)

// User returns the authenticated Discord user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("NOT_AUTHENTICATED")
	}
	return uid, nil
}

// MustUser returns the authenticated user id or panics
// only use on routes protected by the access gate
func MustUser(r *http.Request) string {
	uid, err := User(r)
	if err != nil {
		panic(err)
	}
	return uid
}

// MemberNick returns the guild nickname from the request context, empty when unset
func MemberNick(r *http.Request) string {
	return pnet.MemberNick(r.Context())
}
