package middleware

import (
	"net/http"
	"runtime/debug"

	"catalog-service/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoverMiddleware struct {
	log *logrus.Logger
}

func NewRecoverMiddleware(log *logrus.Logger) *RecoverMiddleware {
	return &RecoverMiddleware{log: log}
}

// Handle turns a panic in a handler into a 500 envelope.
func (m *RecoverMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.log.WithFields(logrus.Fields{
					"request_id": GetRequestIDFromContext(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")
				response.InternalServerError(w, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
