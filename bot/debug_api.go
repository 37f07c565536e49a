package bot

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"casinobot/application"
	"casinobot/domain/entities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// DebugResponse represents the response from a debug endpoint
type DebugResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AccountInfo is an account as the debug API shows it
type AccountInfo struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"name"`
	Balance     int64  `json:"balance"`
	Version     int64  `json:"version"`
}

// SessionInfo is an open blackjack game as the debug API shows it
type SessionInfo struct {
	Identity  string    `json:"identity"`
	Wager     int64     `json:"wager"`
	Player    string    `json:"player"`
	Dealer    string    `json:"dealer"`
	StartedAt time.Time `json:"started_at"`
}

// SessionLister reports the open blackjack sessions
type SessionLister interface {
	Sessions() []entities.BlackjackSession
}

// DebugAPI serves read-only diagnostics over HTTP
type DebugAPI struct {
	ledger   application.LedgerSnapshotter
	sessions SessionLister
}

func NewDebugAPI(ledger application.LedgerSnapshotter, sessions SessionLister) *DebugAPI {
	return &DebugAPI{
		ledger:   ledger,
		sessions: sessions,
	}
}

// Routes builds the debug router
func (a *DebugAPI) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/accounts", a.handleAccounts)
		r.Get("/accounts/{identity}", a.handleAccount)
		r.Get("/sessions", a.handleSessions)
	})

	return r
}

// Start serves the debug API on addr in the background
func (a *DebugAPI) Start(addr string) *http.Server {
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Debug API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Debug API server error: %v", err)
		}
	}()

	return server
}

func (a *DebugAPI) handleAccounts(w http.ResponseWriter, r *http.Request) {
	ledger, err := a.ledger.Snapshot(r.Context())
	if err != nil {
		log.WithError(err).Error("Debug API failed to read ledger")
		respondWithError(w, "failed to read ledger", http.StatusInternalServerError)
		return
	}

	accounts := make([]AccountInfo, 0, len(ledger))
	for id, acct := range ledger {
		accounts = append(accounts, accountInfo(id, acct))
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Identity < accounts[j].Identity
	})

	respondWithData(w, accounts)
}

func (a *DebugAPI) handleAccount(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")

	ledger, err := a.ledger.Snapshot(r.Context())
	if err != nil {
		log.WithError(err).Error("Debug API failed to read ledger")
		respondWithError(w, "failed to read ledger", http.StatusInternalServerError)
		return
	}

	acct, ok := ledger[identity]
	if !ok {
		respondWithError(w, "account not found", http.StatusNotFound)
		return
	}
	respondWithData(w, accountInfo(identity, acct))
}

func (a *DebugAPI) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions := a.sessions.Sessions()
	out := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionInfo{
			Identity:  s.Identity,
			Wager:     s.Wager,
			Player:    s.Player.String(),
			Dealer:    s.DealerUpCard().String(),
			StartedAt: s.StartedAt,
		})
	}
	respondWithData(w, out)
}

func accountInfo(identity string, acct *entities.Account) AccountInfo {
	return AccountInfo{
		Identity:    identity,
		DisplayName: acct.DisplayName,
		Balance:     acct.Balance,
		Version:     acct.Version,
	}
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Data:    data,
	})
}

func respondWithError(w http.ResponseWriter, error string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DebugResponse{
		Success: false,
		Error:   error,
	})
}
