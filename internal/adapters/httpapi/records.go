package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/validation"
)

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// Clients

func (a *api) listClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clients, err := a.Clients.ListClients(r.Context(), primary.ClientFilters{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (a *api) createClient(w http.ResponseWriter, r *http.Request) {
	var in primary.ClientInput
	if !decode(w, r, &in) {
		return
	}
	client, err := a.Clients.CreateClient(r.Context(), primary.CreateClientRequest{ClientInput: in})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (a *api) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := a.Clients.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (a *api) updateClient(w http.ResponseWriter, r *http.Request) {
	var in primary.ClientInput
	if !decode(w, r, &in) {
		return
	}
	client, err := a.Clients.UpdateClient(r.Context(), primary.UpdateClientRequest{
		ClientID:    chi.URLParam(r, "id"),
		ClientInput: in,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (a *api) setClientStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}
	if err := a.Clients.SetClientStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) deleteClient(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	if err := a.Clients.DeleteClient(r.Context(), chi.URLParam(r, "id"), force); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cases

func (a *api) caseCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Cases.Categories())
}

func (a *api) listCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cases, err := a.Cases.ListCases(r.Context(), primary.CaseFilters{
		ClientID: q.Get("clientId"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

func (a *api) createCase(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateCaseRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := a.Cases.CreateCase(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *api) getCase(w http.ResponseWriter, r *http.Request) {
	c, err := a.Cases.GetCase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) updateCase(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateCaseRequest
	if !decode(w, r, &req) {
		return
	}
	req.CaseID = chi.URLParam(r, "id")
	c, err := a.Cases.UpdateCase(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) toggleCase(w http.ResponseWriter, r *http.Request) {
	c, err := a.Cases.ToggleCaseStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) completeCase(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Cases.CompleteCase(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) reopenCase(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Cases.ReopenCase(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) deleteCase(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Cases.DeleteCase(r.Context(), chi.URLParam(r, "id")))
}

// Tasks

func (a *api) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := a.Tasks.ListTasks(r.Context(), primary.TaskFilters{
		Status:   q.Get("status"),
		CaseID:   q.Get("caseId"),
		ClientID: q.Get("clientId"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (a *api) createTask(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	task, err := a.Tasks.CreateTask(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *api) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := a.Tasks.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *api) updateTask(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	req.TaskID = chi.URLParam(r, "id")
	task, err := a.Tasks.UpdateTask(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *api) markOverdue(w http.ResponseWriter, r *http.Request) {
	n, err := a.Tasks.MarkOverdue(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"delayed": n})
}

func (a *api) completeTask(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Tasks.CompleteTask(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) resumeTask(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Tasks.ResumeTask(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) deleteTask(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Tasks.DeleteTask(r.Context(), chi.URLParam(r, "id")))
}

// Judicial processes

func (a *api) listProcesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	processes, err := a.Processes.ListProcesses(r.Context(), primary.JudicialProcessFilters{
		ClientID: q.Get("clientId"),
		Tribunal: q.Get("tribunal"),
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, processes)
}

func (a *api) registerProcess(w http.ResponseWriter, r *http.Request) {
	var req primary.RegisterProcessRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := a.Processes.RegisterProcess(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *api) getProcess(w http.ResponseWriter, r *http.Request) {
	p, err := a.Processes.GetProcess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) deleteProcess(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Processes.DeleteProcess(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) listTribunals(w http.ResponseWriter, r *http.Request) {
	tribunals, err := a.Processes.ListTribunals(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tribunals)
}

// Dashboard and diagnostics

func (a *api) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := a.Dashboard.GetDashboard(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (a *api) debugCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := a.Account.DebugCounts(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (a *api) debugValidation(w http.ResponseWriter, r *http.Request) {
	if a.Tracker == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	data, err := a.Tracker.ExportFor(ctxutil.ActorFromContext(r.Context()))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

// validateField runs one field validator, for forms validating as the user types.
func (a *api) validateField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
		Field string `json:"field,omitempty"`
	}
	if !decode(w, r, &body) {
		return
	}

	var res validation.Result
	formatted := body.Value
	switch body.Kind {
	case "cpf":
		res = validation.ValidateCPF(body.Value)
		formatted = validation.ApplyInputMask(body.Value, validation.MaskCPF)
	case "phone":
		res = validation.ValidatePhone(body.Value)
		formatted = validation.ApplyInputMask(body.Value, validation.MaskPhone)
	case "email":
		res = validation.ValidateEmail(body.Value)
	case "process":
		res = validation.ValidateProcessNumber(body.Value)
		formatted = validation.FormatProcessNumber(body.Value)
	case "required":
		res = validation.ValidateRequired(body.Value, body.Field)
	default:
		badRequest(w, "kind deve ser cpf, phone, email, process ou required")
		return
	}
	if a.Tracker != nil && body.Kind != "required" {
		a.Tracker.Check(body.Kind, body.Value, res, "", "api.validate")
	}

	writeJSON(w, http.StatusOK, struct {
		validation.Result
		Formatted string `json:"formatted"`
	}{res, formatted})
}

func (a *api) noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
