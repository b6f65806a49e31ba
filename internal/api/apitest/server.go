// Package apitest provides an in-memory Praxable backend for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/praxable/praxable-cli/internal/models"
)

// Route names used for call counting and failure injection.
const (
	RouteListValues    = "GET /values"
	RouteAddValue      = "POST /values"
	RouteDeleteValue   = "DELETE /values/{value_name}"
	RouteGeneratePlan  = "POST /planner/generate"
	RouteGenerateAudio = "POST /planner/generate_with_audio"
	RouteTodayEvents   = "GET /calendar/today"
	RouteAddEvent      = "POST /calendar/events"
	RouteFreeSlots     = "GET /scheduler/free"
	RouteLogTask       = "POST /tasks"
	RouteListTasks     = "GET /tasks"
	RouteCompleteTask  = "POST /tasks/{id}/feedback"
	RouteUpdateTask    = "PATCH /tasks/{id}"
	RouteRetrain       = "POST /predict/retrain"
	RoutePredict       = "POST /predict/fulfillment"
	RouteAnalytics     = "GET /analytics/alignment"
	RouteActivities    = "GET /recommendations/activities"
	RouteRecommend     = "POST /recommendations/suggest"
	RouteConfigStatus  = "GET /config/status"
	RouteSetAPIKey     = "POST /config/api-key"
)

// Failure is an injected error response.
type Failure struct {
	Status int
	Detail string
}

// AudioUpload records what a multipart plan request carried.
type AudioUpload struct {
	HasAudio   bool
	Filename   string
	Audio      []byte
	UserInput  string
	CoreValues []string
}

// Server is a fake Praxable backend. Seed its exported fields before use;
// guard later reads with the snapshot helpers.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	Values          []models.CoreValue
	Tasks           []models.TaskData
	Events          []models.CalendarEvent
	Slots           []models.FreeSlot
	Activities      []models.Activity
	Recommendations []models.Recommendation
	Plan            models.PlannerResponse
	Analytics       models.AnalyticsResponse
	Prediction      *float64
	APIKey          string
	Retrains        int
	LastAudio       *AudioUpload

	nextValueID int
	nextTaskID  int
	calls       map[string]int
	bodies      map[string][]byte
	always      map[string]Failure
	onCall      map[string]map[int]Failure
}

// New starts a fake backend and registers its shutdown with t.
func New(t testing.TB) *Server {
	s := &Server{
		nextValueID: 1,
		nextTaskID:  1,
		calls:       make(map[string]int),
		bodies:      make(map[string][]byte),
		always:      make(map[string]Failure),
		onCall:      make(map[string]map[int]Failure),
	}

	r := mux.NewRouter()
	r.UseEncodedPath()
	r.Use(s.middleware)

	r.HandleFunc("/values", s.listValues).Methods(http.MethodGet).Name(RouteListValues)
	r.HandleFunc("/values", s.addValue).Methods(http.MethodPost).Name(RouteAddValue)
	r.HandleFunc("/values/{value_name}", s.deleteValue).Methods(http.MethodDelete).Name(RouteDeleteValue)
	r.HandleFunc("/planner/generate", s.generatePlan).Methods(http.MethodPost).Name(RouteGeneratePlan)
	r.HandleFunc("/planner/generate_with_audio", s.generateWithAudio).Methods(http.MethodPost).Name(RouteGenerateAudio)
	r.HandleFunc("/calendar/today", s.todayEvents).Methods(http.MethodGet).Name(RouteTodayEvents)
	r.HandleFunc("/calendar/events", s.addEvent).Methods(http.MethodPost).Name(RouteAddEvent)
	r.HandleFunc("/scheduler/free", s.freeSlots).Methods(http.MethodGet).Name(RouteFreeSlots)
	r.HandleFunc("/tasks", s.logTask).Methods(http.MethodPost).Name(RouteLogTask)
	r.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet).Name(RouteListTasks)
	r.HandleFunc("/tasks/{id:[0-9]+}/feedback", s.completeTask).Methods(http.MethodPost).Name(RouteCompleteTask)
	r.HandleFunc("/tasks/{id:[0-9]+}", s.updateTask).Methods(http.MethodPatch).Name(RouteUpdateTask)
	r.HandleFunc("/predict/retrain", s.retrain).Methods(http.MethodPost).Name(RouteRetrain)
	r.HandleFunc("/predict/fulfillment", s.predict).Methods(http.MethodPost).Name(RoutePredict)
	r.HandleFunc("/analytics/alignment", s.analytics).Methods(http.MethodGet).Name(RouteAnalytics)
	r.HandleFunc("/recommendations/activities", s.activities).Methods(http.MethodGet).Name(RouteActivities)
	r.HandleFunc("/recommendations/suggest", s.recommend).Methods(http.MethodPost).Name(RouteRecommend)
	r.HandleFunc("/config/status", s.configStatus).Methods(http.MethodGet).Name(RouteConfigStatus)
	r.HandleFunc("/config/api-key", s.setAPIKey).Methods(http.MethodPost).Name(RouteSetAPIKey)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailAlways makes every call to route fail.
func (s *Server) FailAlways(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.always[route] = Failure{Status: status, Detail: detail}
}

// FailOn makes the n-th (1-based) call to route fail.
func (s *Server) FailOn(route string, n, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onCall[route] == nil {
		s.onCall[route] = make(map[int]Failure)
	}
	s.onCall[route][n] = Failure{Status: status, Detail: detail}
}

// Calls returns how many requests reached route, failed ones included.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests the server has seen.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// LastBody returns the body of the most recent request to route.
func (s *Server) LastBody(route string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[route]
}

// DecodeLastBody unmarshals the most recent request body sent to route.
func (s *Server) DecodeLastBody(t testing.TB, route string, v any) {
	t.Helper()
	body := s.LastBody(route)
	if body == nil {
		t.Fatalf("no request recorded for %s", route)
	}
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decoding %s body: %v", route, err)
	}
}

// TasksSnapshot returns a copy of the stored tasks.
func (s *Server) TasksSnapshot() []models.TaskData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TaskData(nil), s.Tasks...)
}

// EventsSnapshot returns a copy of the stored events.
func (s *Server) EventsSnapshot() []models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CalendarEvent(nil), s.Events...)
}

// ValuesSnapshot returns a copy of the stored values.
func (s *Server) ValuesSnapshot() []models.CoreValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CoreValue(nil), s.Values...)
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil && cur.GetName() != "" {
			route = cur.GetName()
		}

		var body []byte
		if r.Body != nil && r.Header.Get("Content-Type") == "application/json" {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytesReader(body))
		}

		s.mu.Lock()
		s.calls[route]++
		n := s.calls[route]
		if body != nil {
			s.bodies[route] = body
		}
		f, fail := s.always[route]
		if !fail {
			f, fail = s.onCall[route][n]
		}
		s.mu.Unlock()

		if fail {
			writeJSON(w, f.Status, map[string]string{"detail": f.Detail})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listValues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNilSlice(s.ValuesSnapshot()))
}

func (s *Server) addValue(w http.ResponseWriter, r *http.Request) {
	var in models.CoreValue
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	for _, v := range s.Values {
		if v.ValueName == in.ValueName {
			s.mu.Unlock()
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": fmt.Sprintf("value %q already exists", in.ValueName)})
			return
		}
	}
	in.ID = s.nextValueID
	s.nextValueID++
	s.Values = append(s.Values, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) deleteValue(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["value_name"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.Values {
		if v.ValueName == name {
			s.Values = append(s.Values[:i], s.Values[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"detail": fmt.Sprintf("value %q not found", name)})
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var in models.PlannerRequest
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	plan := s.Plan
	s.mu.Unlock()
	if plan.Tasks == nil {
		plan.Tasks = []models.PlannedTask{}
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) generateWithAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	up := &AudioUpload{UserInput: r.FormValue("user_input")}
	if cv := r.FormValue("core_values"); cv != "" {
		if err := json.Unmarshal([]byte(cv), &up.CoreValues); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "core_values must be a JSON list"})
			return
		}
	}
	if file, header, err := r.FormFile("audio_file"); err == nil {
		up.HasAudio = true
		up.Filename = header.Filename
		up.Audio, _ = io.ReadAll(file)
		file.Close()
	}

	s.mu.Lock()
	s.LastAudio = up
	plan := s.Plan
	s.mu.Unlock()
	if plan.Tasks == nil {
		plan.Tasks = []models.PlannedTask{}
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) todayEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNilSlice(s.EventsSnapshot()))
}

func (s *Server) addEvent(w http.ResponseWriter, r *http.Request) {
	var in models.CalendarEvent
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	s.Events = append(s.Events, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) freeSlots(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	slots := append([]models.FreeSlot{}, s.Slots...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, slots)
}

func (s *Server) logTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskData
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	in.ID = s.nextTaskID
	s.nextTaskID++
	s.Tasks = append(s.Tasks, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNilSlice(s.TasksSnapshot()))
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var in models.TaskFeedback
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks[i].DidIt = 1
			s.Tasks[i].MoodAfter = models.IntPtr(in.MoodAfter)
			s.Tasks[i].FulfillmentScore = models.IntPtr(in.FulfillmentScore)
			writeJSON(w, http.StatusOK, s.Tasks[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var in models.TaskUpdate
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			if in.MoodAfter != nil {
				s.Tasks[i].MoodAfter = in.MoodAfter
			}
			if in.FulfillmentScore != nil {
				s.Tasks[i].FulfillmentScore = in.FulfillmentScore
			}
			if in.AlignedValue != nil {
				s.Tasks[i].AlignedValue = *in.AlignedValue
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
}

func (s *Server) retrain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.Retrains++
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Model retrained successfully"})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	var in models.PredictionRequest
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	p := s.Prediction
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.PredictionResponse{PredictedFulfillment: p})
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := s.Analytics
	s.mu.Unlock()
	if a.Breakdown == nil {
		a.Breakdown = []models.ValueBreakdown{}
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) activities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acts := append([]models.Activity{}, s.Activities...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, acts)
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var in models.RecommendationRequest
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	recs := append([]models.Recommendation{}, s.Recommendations...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) configStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	key := s.APIKey
	s.mu.Unlock()
	status := models.ConfigStatus{IsConfigured: key != ""}
	if key != "" {
		preview := key
		if len(key) > 8 {
			preview = key[:4] + "..." + key[len(key)-4:]
		}
		status.KeyPreview = &preview
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) setAPIKey(w http.ResponseWriter, r *http.Request) {
	var in struct {
		APIKey string `json:"api_key"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	s.APIKey = in.APIKey
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "API key saved successfully"})
}
