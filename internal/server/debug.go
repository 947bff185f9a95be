package server

import (
	"encoding/json"
	"net/http"

	"boingle/internal/config"
	"boingle/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Только чтение: всё берётся из последнего разосланного снимка.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/entities", h.handleEntities)
	mux.HandleFunc("/debug/balance", h.handleBalance)
	mux.HandleFunc("/debug/subscribers", h.handleSubscribers)
}

// /debug/state - полный последний снимок
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.LastState())
}

// /debug/entities?kind=GADGET - сущности поля, можно отфильтровать по типу
func (h *DebugHandler) handleEntities(w http.ResponseWriter, r *http.Request) {
	state := h.Service.LastState()
	if state.Snapshot == nil {
		writeJSON(w, nil)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		writeJSON(w, state.Snapshot.Entities)
		return
	}

	filtered := state.Snapshot.Entities[:0:0]
	for _, e := range state.Snapshot.Entities {
		if e.Kind == kind {
			filtered = append(filtered, e)
		}
	}
	writeJSON(w, filtered)
}

// /debug/balance - активный баланс в YAML (удобно как шаблон для BOINGLE_CONFIG)
func (h *DebugHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	data, err := config.MarshalBalance(h.Service.Balance())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

// /debug/subscribers - сколько клиентов подключено
func (h *DebugHandler) handleSubscribers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"subscribers": h.Service.Hub.SubscriberCount()})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат - это [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
