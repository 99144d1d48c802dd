package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"formdesk/internal/entries"
	"formdesk/internal/stats"
)

const missingFieldsText = "Please fill in all fields."

// WebServer отдаёт форму и список записей
type WebServer struct {
	store     entries.Store
	server    *http.Server
	port      int
	startTime time.Time
	page      *template.Template
}

// PageData данные для рендеринга страницы формы
type PageData struct {
	Error       string
	Success     string
	EntryJSON   string
	EntriesJSON string
	Form        submission
}

type submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// NewWebServer создает новый веб-сервер
func NewWebServer(store entries.Store, port int) *WebServer {
	return &WebServer{
		store:     store,
		port:      port,
		startTime: time.Now(),
		page:      template.Must(template.New("form").Parse(getHTMLTemplate())),
	}
}

// Handler возвращает маршрутизатор со всеми обработчиками
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", ws.handleStatus)
	mux.HandleFunc("/api/entries", ws.handleEntries)
	mux.HandleFunc("/api/stats", ws.handleStats)
	mux.HandleFunc("/submit", ws.handleSubmit)
	mux.HandleFunc("/", ws.handleRoot)
	return mux
}

// Start запускает веб-сервер
func (ws *WebServer) Start() error {
	ws.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", ws.port),
		Handler:      ws.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Starting form server on http://localhost:%d", ws.port)
	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop останавливает веб-сервер
func (ws *WebServer) Stop() error {
	if ws.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return ws.server.Shutdown(ctx)
}

func (ws *WebServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ws.renderPage(w, http.StatusOK, &PageData{})
}

// handleSubmit обрабатывает отправку HTML формы
func (ws *WebServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	sub := submission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	if err := entries.Validate(sub.Name, sub.Email, sub.Message); err != nil {
		ws.renderPage(w, http.StatusBadRequest, &PageData{Error: missingFieldsText, Form: sub})
		return
	}

	rec, err := ws.store.Add(sub.Name, sub.Email, sub.Message)
	if err != nil {
		log.Printf("❌ Failed to save entry: %v", err)
		http.Error(w, "Failed to save entry", http.StatusInternalServerError)
		return
	}

	ws.renderPage(w, http.StatusOK, &PageData{
		Success:   fmt.Sprintf("Thank you %s! Your entry has been saved.", rec.Name),
		EntryJSON: prettyJSON(rec),
	})
}

// handleEntries отдаёт все записи или принимает новую в JSON
func (ws *WebServer) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := ws.store.Load()
		if err != nil {
			log.Printf("❌ Failed to load entries: %v", err)
			http.Error(w, "Failed to load entries", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var sub submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "Invalid JSON request: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := entries.Validate(sub.Name, sub.Email, sub.Message); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": missingFieldsText})
			return
		}
		rec, err := ws.store.Add(sub.Name, sub.Email, sub.Message)
		if err != nil {
			log.Printf("❌ Failed to save entry: %v", err)
			http.Error(w, "Failed to save entry", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ws *WebServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := ws.store.Load()
	if err != nil {
		log.Printf("❌ Failed to load entries: %v", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}
	day := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = d
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": stats.Summarize(records),
		"daily":   stats.AnalyzeDay(records, day),
	})
}

// handleStatus обрабатывает health check запросы
func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "formdesk",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(ws.startTime).String(),
	}
	if records, err := ws.store.Load(); err != nil {
		response["status"] = "degraded"
		response["error"] = err.Error()
	} else {
		response["entries"] = len(records)
	}
	writeJSON(w, http.StatusOK, response)
}

func (ws *WebServer) renderPage(w http.ResponseWriter, status int, data *PageData) {
	records, err := ws.store.Load()
	if err != nil {
		log.Printf("❌ Failed to load entries: %v", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}
	if len(records) > 0 {
		data.EntriesJSON = prettyJSON(records)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := ws.page.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func prettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
