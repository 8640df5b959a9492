package cache

import (
	"fmt"
	"net/http"

	"opsdash/internal/assignment"
)

// SessionCacheRepo keeps live delivery-assignment sessions keyed by
// order id on top of a KV store.
type SessionCacheRepo struct {
	cch KV
}

func NewSessionCache(cch KV) *SessionCacheRepo {
	return &SessionCacheRepo{cch: cch}
}

func (r *SessionCacheRepo) PutSession(oid string, s *assignment.Session) {
	r.cch.Put(oid, s)
}

func (r *SessionCacheRepo) GetSession(oid string) (*assignment.Session, error) {
	v, ok := r.cch.Get(oid)
	if !ok {
		return nil, NewErrorHandler(fmt.Errorf("no session for order %s", oid), http.StatusNotFound)
	}
	s, ok := v.(*assignment.Session)
	if !ok {
		return nil,
			NewErrorHandler(fmt.Errorf("failed to convert session for order %s to its struct", oid),
				http.StatusInternalServerError)
	}
	return s, nil
}

func (r *SessionCacheRepo) DeleteSession(oid string) {
	r.cch.Delete(oid)
}
