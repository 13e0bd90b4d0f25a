package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/identity"
	"github.com/venturely/venturely/internal/notify"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/storage"
)

const defaultMaxUploadBytes = 10 << 20

// TokenIssuer signs session tokens for authenticated identities.
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// Dependencies are the collaborators every handler shares. All of them must be
// safe for concurrent use.
type Dependencies struct {
	Tokens        TokenIssuer
	Identity      identity.Provider
	Profiles      repository.ProfileRepository
	Startups      repository.StartupRepository
	Pitches       repository.PitchRepository
	SavedPitches  repository.SavedPitchRepository
	Notifications repository.NotificationRepository
	Files         repository.FileRepository
	Storage       storage.Storage
	Hub           *notify.Hub
	Log           *logrus.Logger

	MaxUploadBytes int64
}

type Handler struct {
	deps Dependencies
}

func New(deps Dependencies) *Handler {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{deps: deps}
}

// serverError reports a store or backend failure with the underlying message.
func (h *Handler) serverError(ctx *gin.Context, msg string, err error) {
	_ = ctx.Error(err)
	h.deps.Log.WithError(err).WithField("API", ctx.Request.Method+" "+ctx.FullPath()).Error(msg)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
}

var _ TokenIssuer = (*auth.TokenCodec)(nil)
