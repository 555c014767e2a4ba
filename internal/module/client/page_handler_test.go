package client

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
)

const stubTemplates = `
{{define "client/list.html"}}list{{range .Clients}}:{{.Nom}}{{end}}{{end}}
{{define "client/form.html"}}form{{if .IsEdit}}:edit{{end}}{{if .Error}}:{{.Error}}{{end}}{{end}}
{{define "client/delete.html"}}delete:{{.Client.ID}}{{if .Error}}:{{.Error}}{{end}}{{end}}
{{define "errors/400.html"}}400{{end}}
{{define "errors/404.html"}}404{{end}}
{{define "errors/500.html"}}500{{end}}
`

func setupPageRouter(h *ClientPageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(stubTemplates)))

	r.GET("/clients", h.ListPage)
	r.GET("/clients/new", h.NewPage)
	r.GET("/clients/:id/edit", h.EditPage)
	r.GET("/clients/:id/delete", h.DeletePage)
	r.POST("/clients", h.CreateHTMX)
	r.PUT("/clients/:id", h.UpdateHTMX)
	r.DELETE("/clients/:id", h.DeleteHTMX)
	return r
}

func doForm(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validForm() url.Values {
	return url.Values{
		"nom":         {"Martin"},
		"telephone":   {"0612345678"},
		"email":       {"a@b.com"},
		"nbPersonnes": {"2"},
	}
}

func toast(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var trigger map[string]map[string]string
	if err := json.Unmarshal([]byte(w.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("invalid HX-Trigger %q: %v", w.Header().Get("HX-Trigger"), err)
	}
	return trigger["showToast"]
}

func TestClientPage_List(t *testing.T) {
	svc := newMockService()
	svc.seed(domain.Client{BaseModel: domain.BaseModel{ID: 1}, Nom: "Martin"})
	r := setupPageRouter(NewClientPageHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	if w.Code != http.StatusOK || w.Body.String() != "list:Martin" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestClientPage_EditAndDeletePages(t *testing.T) {
	svc := newMockService()
	svc.seed(domain.Client{BaseModel: domain.BaseModel{ID: 5}, Nom: "Martin"})
	r := setupPageRouter(NewClientPageHandler(svc))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/clients/new", http.StatusOK, "form"},
		{"/clients/5/edit", http.StatusOK, "form:edit"},
		{"/clients/5/delete", http.StatusOK, "delete:5"},
		{"/clients/6/edit", http.StatusNotFound, "404"},
		{"/clients/x/delete", http.StatusBadRequest, "400"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.status || w.Body.String() != tt.body {
			t.Errorf("GET %s = %d %q, want %d %q", tt.path, w.Code, w.Body.String(), tt.status, tt.body)
		}
	}
}

func TestClientPage_Create(t *testing.T) {
	svc := newMockService()
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodPost, "/clients", validForm())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("HX-Redirect"); got != "/clients" {
		t.Errorf("HX-Redirect = %q", got)
	}
	if got := toast(t, w); got["type"] != "success" || got["message"] != "Client créé" {
		t.Errorf("toast = %v", got)
	}
	if svc.lastInput.NbPersonnes != 2 {
		t.Errorf("service received %+v", svc.lastInput)
	}
}

func TestClientPage_Create_RuleViolation(t *testing.T) {
	svc := newMockService()
	svc.createErr = domain.NewRuleError(domain.ErrNameHasDigit)
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodPost, "/clients", validForm())

	if w.Header().Get("HX-Redirect") != "" {
		t.Error("failed create must not redirect")
	}
	if want := "form:" + domain.ErrNameHasDigit.Error(); w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestClientPage_Create_BindError(t *testing.T) {
	r := setupPageRouter(NewClientPageHandler(newMockService()))

	w := doForm(r, http.MethodPost, "/clients", url.Values{"nom": {"Martin"}})

	if w.Body.String() != "form:"+inputErrorMsg {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestClientPage_Create_StoreErrorHidden(t *testing.T) {
	svc := newMockService()
	svc.createErr = domain.NewAppError(domain.CodeInternal, "client store error: disk I/O", nil)
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodPost, "/clients", validForm())

	if strings.Contains(w.Body.String(), "disk") {
		t.Errorf("store detail leaked to page: %q", w.Body.String())
	}
}

func TestClientPage_Update(t *testing.T) {
	svc := newMockService()
	svc.seed(domain.Client{BaseModel: domain.BaseModel{ID: 1}, Nom: "Martin"})
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodPut, "/clients/1", validForm())
	if w.Header().Get("HX-Redirect") != "/clients" {
		t.Errorf("expected redirect, got headers %v", w.Header())
	}

	w = doForm(r, http.MethodPut, "/clients/2", validForm())
	if w.Code != http.StatusNotFound {
		t.Errorf("update of absent client = %d, want 404", w.Code)
	}
}

func TestClientPage_Delete(t *testing.T) {
	svc := newMockService()
	svc.seed(domain.Client{BaseModel: domain.BaseModel{ID: 1}, Nom: "Martin"})
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodDelete, "/clients/1", nil)
	if w.Header().Get("HX-Redirect") != "/clients" {
		t.Fatalf("expected redirect, got headers %v", w.Header())
	}

	w = doForm(r, http.MethodDelete, "/clients/1", nil)
	if w.Header().Get("HX-Reswap") != "none" {
		t.Error("second delete should not swap")
	}
	if got := toast(t, w); got["type"] != "error" {
		t.Errorf("toast = %v", got)
	}
}

func TestClientPage_Delete_InUse(t *testing.T) {
	svc := newMockService()
	svc.seed(domain.Client{BaseModel: domain.BaseModel{ID: 1}, Nom: "Martin"})
	svc.deleteErr = errClientInUse
	r := setupPageRouter(NewClientPageHandler(svc))

	w := doForm(r, http.MethodDelete, "/clients/1", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if want := "delete:1:" + domain.ErrClientHasReservations.Error(); w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
	if _, ok := svc.clients[1]; !ok {
		t.Error("blocked delete removed the client")
	}
}
