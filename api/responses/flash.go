package responses

import (
	"context"
	"net/http"

	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

// FlashWriter queues a one-shot notice for the next admin page render.
type FlashWriter interface {
	AddFlash(w http.ResponseWriter, r *http.Request, flash types.Flash) error
}

func SuccessFlash(message string) types.Flash {
	return types.Flash{Message: message, Type: types.FlashSuccess}
}

func ErrorFlash(err error) types.Flash {
	return types.Flash{Message: PublicMessage(err), Type: types.FlashError}
}

// RedirectWithFlash stores flash and redirects to target. A flash that
// cannot be stored is logged; the redirect still happens.
func RedirectWithFlash(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, r *http.Request, jar FlashWriter, target string, flash types.Flash) {
	if jar != nil {
		if err := jar.AddFlash(w, r, flash); err != nil && logg != nil {
			logg.Error(ctx, "flash.store_failed", err)
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}
