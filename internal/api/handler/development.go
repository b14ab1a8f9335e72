package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coachpad/coachpad/internal/api/middleware"
	"github.com/coachpad/coachpad/internal/api/response"
	"github.com/coachpad/coachpad/internal/api/validation"
	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/development"
)

// defaultHistoryLimit caps history responses when the client sends no limit.
const defaultHistoryLimit = 10

// DevelopmentHandler serves one metric domain's endpoint family. The three
// domains share every route shape, so physical, conditional, and endurance
// are three instantiations of this handler.
type DevelopmentHandler[R any, P development.RecordPtr[R]] struct {
	repo     development.Repository[R]
	catalog  catalog.Repository
	users    auth.UserRepository
	fromForm func(map[string]string) (*R, error)
	graph    func(development.GraphRequest, []R) (*development.Graph, error)
}

// NewPhysicalHandler creates the handler for the physical domain.
func NewPhysicalHandler(repo development.Repository[development.Physical], cat catalog.Repository, users auth.UserRepository) *DevelopmentHandler[development.Physical, *development.Physical] {
	return &DevelopmentHandler[development.Physical, *development.Physical]{
		repo:     repo,
		catalog:  cat,
		users:    users,
		fromForm: development.PhysicalFromForm,
		graph:    development.BuildPhysicalGraph,
	}
}

// NewConditionalHandler creates the handler for the conditional domain.
func NewConditionalHandler(repo development.Repository[development.Conditional], cat catalog.Repository, users auth.UserRepository) *DevelopmentHandler[development.Conditional, *development.Conditional] {
	return &DevelopmentHandler[development.Conditional, *development.Conditional]{
		repo:     repo,
		catalog:  cat,
		users:    users,
		fromForm: development.ConditionalFromForm,
		graph:    development.BuildConditionalGraph,
	}
}

// NewEnduranceHandler creates the handler for the endurance domain.
func NewEnduranceHandler(repo development.Repository[development.Endurance], cat catalog.Repository, users auth.UserRepository) *DevelopmentHandler[development.Endurance, *development.Endurance] {
	return &DevelopmentHandler[development.Endurance, *development.Endurance]{
		repo:     repo,
		catalog:  cat,
		users:    users,
		fromForm: development.EnduranceFromForm,
		graph:    development.BuildEnduranceGraph,
	}
}

// caller loads the authenticated user behind the verified claims.
func (h *DevelopmentHandler[R, P]) caller(w http.ResponseWriter, r *http.Request) *auth.User {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Message(w, http.StatusUnauthorized, "Token is missing!")
		return nil
	}
	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Message(w, http.StatusUnauthorized, "Invalid token!")
			return nil
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return nil
	}
	return user
}

// Leagues handles GET /{domain}/leagues.
func (h *DevelopmentHandler[R, P]) Leagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.catalog.ListLeagues(r.Context())
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	if len(leagues) == 0 {
		response.Message(w, http.StatusNotFound, "No leagues found")
		return
	}
	response.JSON(w, http.StatusOK, leagues)
}

// Teams handles GET /{domain}/teams/{leagueId}. Admins see every team in the
// league; everyone else sees only their own team.
func (h *DevelopmentHandler[R, P]) Teams(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}

	leagueID := chi.URLParam(r, "leagueId")
	teams, err := h.catalog.TeamsByLeague(r.Context(), leagueID)
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	if !user.IsAdmin {
		filtered := teams[:0]
		for _, t := range teams {
			if user.TeamID != nil && t.TeamID == *user.TeamID {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	if len(teams) == 0 {
		response.Message(w, http.StatusNotFound, "No teams found for this league")
		return
	}
	response.JSON(w, http.StatusOK, teams)
}

// Footballers handles GET /{domain}/footballers/{teamId}. Non-admins may only
// read the roster of their own team.
func (h *DevelopmentHandler[R, P]) Footballers(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}

	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	if !user.IsAdmin && (user.TeamID == nil || *user.TeamID != teamID) {
		response.Message(w, http.StatusForbidden, "You do not have access to this team")
		return
	}

	footballers, err := h.catalog.FootballersByTeam(r.Context(), teamID)
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	if len(footballers) == 0 {
		response.Message(w, http.StatusNotFound, "No footballers found for this team")
		return
	}
	response.JSON(w, http.StatusOK, footballers)
}

// DataByDate handles GET /{domain}/data/{footballerId}/{date}.
func (h *DevelopmentHandler[R, P]) DataByDate(w http.ResponseWriter, r *http.Request) {
	footballerID, date, ok := h.entryKey(w, r)
	if !ok {
		return
	}

	rec, err := h.repo.ByDate(r.Context(), footballerID, date)
	if err != nil {
		if errors.Is(err, development.ErrEntryNotFound) {
			response.Message(w, http.StatusNotFound, "No data found for this date")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	response.JSON(w, http.StatusOK, rec)
}

// DataRange handles GET /{domain}/data/{footballerId} with optional start and
// end query bounds.
func (h *DevelopmentHandler[R, P]) DataRange(w http.ResponseWriter, r *http.Request) {
	footballerID, err := strconv.ParseInt(chi.URLParam(r, "footballerId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid footballer id")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	for _, d := range []string{start, end} {
		if d != "" && !validation.ValidDate(d) {
			response.Message(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	recs, err := h.repo.Range(r.Context(), footballerID, start, end)
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	if recs == nil {
		recs = []R{}
	}
	response.JSON(w, http.StatusOK, recs)
}

// Add handles POST /{domain}/data/{footballerId}/{date}. The body is a flat
// object of string form values, validated and typed at this boundary.
func (h *DevelopmentHandler[R, P]) Add(w http.ResponseWriter, r *http.Request) {
	footballerID, date, ok := h.entryKey(w, r)
	if !ok {
		return
	}
	if _, err := h.catalog.FootballerByID(r.Context(), footballerID); err != nil {
		if errors.Is(err, catalog.ErrFootballerNotFound) {
			response.Message(w, http.StatusNotFound, "Footballer not found")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	rec, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	e := P(rec).Header()
	e.FootballerID = footballerID
	e.CreatedAt = date

	if err := h.repo.Insert(r.Context(), rec); err != nil {
		if errors.Is(err, development.ErrDuplicateEntry) {
			response.Message(w, http.StatusBadRequest, "Data for this date already exists")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	response.MessageData(w, http.StatusCreated, "Data added successfully", rec)
}

// Update handles PUT /{domain}/data/entry/{entryId}.
func (h *DevelopmentHandler[R, P]) Update(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	rec, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	if err := h.repo.Update(r.Context(), entryID, rec); err != nil {
		if errors.Is(err, development.ErrEntryNotFound) {
			response.Message(w, http.StatusNotFound, "Entry not found")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	P(rec).Header().ID = entryID
	response.MessageData(w, http.StatusOK, "Data updated successfully", rec)
}

// Delete handles DELETE /{domain}/data/entry/{entryId}.
func (h *DevelopmentHandler[R, P]) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := h.repo.Delete(r.Context(), entryID); err != nil {
		if errors.Is(err, development.ErrEntryNotFound) {
			response.Message(w, http.StatusNotFound, "Entry not found")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	response.Message(w, http.StatusOK, "Data deleted successfully")
}

// History handles GET /{domain}/history/{footballerId}. Newest entries first,
// at most ?limit of them.
func (h *DevelopmentHandler[R, P]) History(w http.ResponseWriter, r *http.Request) {
	footballerID, err := strconv.ParseInt(chi.URLParam(r, "footballerId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid footballer id")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.Message(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	recs, err := h.repo.History(r.Context(), footballerID, limit)
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	if recs == nil {
		recs = []R{}
	}
	response.JSON(w, http.StatusOK, recs)
}

// GenerateGraph handles POST /{domain}/generate-graph.
func (h *DevelopmentHandler[R, P]) GenerateGraph(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req development.GraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing JSON in request")
		return
	}
	if req.FootballerID == 0 {
		response.Message(w, http.StatusBadRequest, "Missing footballer id")
		return
	}
	for _, d := range []string{req.StartDate, req.EndDate} {
		if d != "" && !validation.ValidDate(d) {
			response.Message(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	recs, err := h.repo.Range(r.Context(), req.FootballerID, req.StartDate, req.EndDate)
	if err != nil {
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	if len(recs) == 0 {
		response.Message(w, http.StatusNotFound, "No data available for the selected criteria")
		return
	}

	graph, err := h.graph(req, recs)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, graph)
}

func (h *DevelopmentHandler[R, P]) entryKey(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	footballerID, err := strconv.ParseInt(chi.URLParam(r, "footballerId"), 10, 64)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid footballer id")
		return 0, "", false
	}
	date := chi.URLParam(r, "date")
	if !validation.ValidDate(date) {
		response.Message(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return 0, "", false
	}
	return footballerID, date, true
}

func (h *DevelopmentHandler[R, P]) decodeForm(w http.ResponseWriter, r *http.Request) (*R, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing JSON in request")
		return nil, false
	}
	rec, err := h.fromForm(values)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return rec, true
}
