package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/infra/http/middleware"
	"github.com/atumia/atumia-core/internal/usecase"
)

type LeadHandler struct {
	listUC      *usecase.ListLeadsUseCase
	createUC    *usecase.CreateLeadUseCase
	session     usecase.SessionStoreInterface
	health      *health.State
	rateLimiter *RateLimiter
}

func NewLeadHandler(listUC *usecase.ListLeadsUseCase, createUC *usecase.CreateLeadUseCase, session usecase.SessionStoreInterface, healthState *health.State) *LeadHandler {
	return &LeadHandler{
		listUC:      listUC,
		createUC:    createUC,
		session:     session,
		health:      healthState,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type CreateLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleList responde o board: leads da organização vinculada, já com
// estágio canônico e score. Sem vínculo a lista vem vazia — o board
// mostra as colunas secas, sem erro.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tc := h.session.Current()

	leads, err := h.listUC.Execute(ctx, tc)
	if err != nil {
		if usecase.IsSchemaDrift(err) {
			respondSchemaDrift(w, h.health)
			return
		}
		// ListLeads só sobe drift; qualquer outra coisa já virou []
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CreateLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	tc := h.session.Current()
	ok, err := h.createUC.Execute(ctx, tc, input)
	if err != nil {
		if usecase.IsSchemaDrift(err) {
			respondSchemaDrift(w, h.health)
			return
		}
		writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if !ok {
		writeJSON(w, http.StatusInternalServerError, CreateLeadResponse{
			Success: false,
			Message: "Erro ao salvar no banco. Verifique a conexão e o vínculo de organização.",
		})
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, CreateLeadResponse{Success: true})
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
