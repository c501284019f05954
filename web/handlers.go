package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jkap86/thelabbackground2026/controller"
	"github.com/jkap86/thelabbackground2026/db"
	"github.com/jkap86/thelabbackground2026/model"
	"github.com/unrolled/render"
)

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func getTradesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := chi.URLParam(r, "leagueID")
		trades, err := ctrl.GetTrades(r.Context(), leagueID)
		if err != nil {
			if errors.Is(err, db.ErrLeagueNotFound) {
				render.JSON(w, http.StatusNotFound, map[string]string{"error": "league not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}
			return
		}
		if trades == nil {
			trades = []model.Trade{}
		}
		render.JSON(w, http.StatusOK, trades)
	}
}

func getValuationsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		values, err := ctrl.GetValuations(r.Context(), playerID)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if values == nil {
			values = []model.ValuationPoint{}
		}
		render.JSON(w, http.StatusOK, values)
	}
}

func syncLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := ctrl.UpdateLeagues(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, counts)
	}
}

func syncValuationsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := ctrl.SyncCurrentValuations(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"points": points})
	}
}
