package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/api"
	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/services/storage"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/middleware"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	Pagination *struct {
		CurrentPage int   `json:"current_page"`
		Total       int64 `json:"total"`
		TotalPages  int   `json:"total_pages"`
	} `json:"pagination"`
}

type fakeImages struct {
	uploaded map[string][]byte
	deleted  []string
	fail     bool
}

func (f *fakeImages) UploadFile(ctx context.Context, key string, data io.ReadSeeker, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("spaces down")
	}
	b, _ := io.ReadAll(data)
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[key] = b
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeImages) DeleteFile(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, images storage.ImageStore, security middleware.SecurityConfig) *testServer {
	t.Helper()
	store, err := database.StartSQLite(":memory:", "test")
	if err != nil {
		t.Fatalf("StartSQLite: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := utils.NewNopLogger()
	app := api.NewApp(log)

	if security.AllowedOrigins == "" {
		security.AllowedOrigins = "http://localhost:3000"
	}
	security.DisableAccessLog = true

	deps := Dependencies{Logger: log, Security: security}
	if images != nil {
		deps.Images = images
	}
	SetupRoutes(app, store, deps)

	return &testServer{t: t, app: app, db: store.GetDB()}
}

func (s *testServer) do(req *http.Request) (int, envelope) {
	s.t.Helper()
	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	body, _ := io.ReadAll(resp.Body)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, body, err)
		}
	}
	return resp.StatusCode, env
}

func (s *testServer) request(method, path string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func soccer() map[string]interface{} {
	return map[string]interface{}{
		"titulo":          "Soccer",
		"descripcion":     "Fútbol sala",
		"horario":         "Martes 17:00",
		"etapa_educativa": "Primaria",
		"cuota":           15,
	}
}

func guardian(email string) map[string]interface{} {
	return map[string]interface{}{
		"nombre":               "Ana",
		"apellidos":            "Ruiz",
		"nombre_responsable":   "Eva",
		"apellido_responsable": "Ruiz",
		"email_responsable":    email,
		"telefono_responsable": "600000000",
	}
}

func TestAttachDetachScenario(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	status, env := s.request("POST", "/api/v1/categorias", map[string]string{"nombre": "Sports", "descripcion": "Deportes"})
	if status != fiber.StatusCreated {
		t.Fatalf("create category: want=201 got=%d (%s)", status, env.Message)
	}
	category := decode[model.Category](t, env.Data)

	status, env = s.request("POST", "/api/v1/actividades", soccer())
	if status != fiber.StatusCreated {
		t.Fatalf("create activity: want=201 got=%d (%s)", status, env.Message)
	}
	activity := decode[model.Activity](t, env.Data)
	if activity.ID == 0 || activity.Title != "Soccer" || activity.Fee != 15 || activity.CreatedAt.IsZero() {
		t.Fatalf("unexpected activity: %+v", activity)
	}

	attachPath := "/api/v1/actividades/" + itoa(activity.ID) + "/categorias/" + itoa(category.ID)
	for i := 0; i < 2; i++ {
		status, env = s.request("POST", attachPath, nil)
		if status != fiber.StatusOK {
			t.Fatalf("attach #%d: want=200 got=%d", i+1, status)
		}
	}
	if env.Message != "Category associated with activity successfully." {
		t.Fatalf("attach message: %q", env.Message)
	}

	listPath := "/api/v1/actividades/" + itoa(activity.ID) + "/categorias"
	status, env = s.request("GET", listPath, nil)
	if status != fiber.StatusOK {
		t.Fatalf("list: want=200 got=%d", status)
	}
	categories := decode[[]model.Category](t, env.Data)
	if len(categories) != 1 || categories[0].Name != "Sports" {
		t.Fatalf("list after attach: %+v", categories)
	}

	status, _ = s.request("DELETE", attachPath, nil)
	if status != fiber.StatusOK {
		t.Fatalf("detach: want=200 got=%d", status)
	}
	// Detaching again is a no-op
	status, _ = s.request("DELETE", attachPath, nil)
	if status != fiber.StatusOK {
		t.Fatalf("second detach: want=200 got=%d", status)
	}

	_, env = s.request("GET", listPath, nil)
	if got := decode[[]model.Category](t, env.Data); len(got) != 0 {
		t.Fatalf("list after detach: %+v", got)
	}
	if string(env.Data) != "[]" {
		t.Fatalf("empty list should render []: %s", env.Data)
	}
}

func TestDeleteActivityCascades(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/categorias", map[string]string{"nombre": "Sports", "descripcion": "Deportes"})
	category := decode[model.Category](t, env.Data)
	_, env = s.request("POST", "/api/v1/actividades", soccer())
	activity := decode[model.Activity](t, env.Data)
	_, env = s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	student := decode[model.Student](t, env.Data)

	s.request("POST", "/api/v1/categorias/"+itoa(category.ID)+"/actividades/"+itoa(activity.ID), nil)
	status, env := s.request("POST", "/api/v1/alumnos/"+itoa(student.ID)+"/actividades/"+itoa(activity.ID), nil)
	if status != fiber.StatusOK {
		t.Fatalf("enroll: want=200 got=%d", status)
	}
	enrollment := decode[model.EnrollmentRequest](t, env.Data)
	if enrollment.Status != model.EnrollmentPending || enrollment.RequestedAt.IsZero() {
		t.Fatalf("unexpected enrollment: %+v", enrollment)
	}

	status, _ = s.request("DELETE", "/api/v1/actividades/"+itoa(activity.ID), nil)
	if status != fiber.StatusNoContent {
		t.Fatalf("delete: want=204 got=%d", status)
	}

	status, env = s.request("GET", "/api/v1/actividades/"+itoa(activity.ID)+"/categorias", nil)
	if status != fiber.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("list of deleted activity: want=404 got=%d %+v", status, env)
	}

	var links, enrollments int64
	s.db.Model(&model.ActivityCategory{}).Count(&links)
	s.db.Model(&model.EnrollmentRequest{}).Count(&enrollments)
	if links != 0 || enrollments != 0 {
		t.Fatalf("dependents left: links=%d enrollments=%d", links, enrollments)
	}

	_, env = s.request("GET", "/api/v1/alumnos/"+itoa(student.ID)+"/actividades", nil)
	if got := decode[[]model.Activity](t, env.Data); len(got) != 0 {
		t.Fatalf("student still lists deleted activity: %+v", got)
	}
}

func TestBadIDReturnsNotFound(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	paths := []string{
		"/api/v1/actividades/999",
		"/api/v1/actividades/abc",
		"/api/v1/categorias/0",
		"/api/v1/alumnos/-4",
		"/api/v1/solicitudes/12",
		"/api/v1/products/xyz",
		"/api/v1/books/77",
		"/api/v1/categorias/999/actividades",
	}
	for _, path := range paths {
		status, env := s.request("GET", path, nil)
		if status != fiber.StatusNotFound {
			t.Fatalf("GET %s: want=404 got=%d", path, status)
		}
		if env.Success {
			t.Fatalf("GET %s: success should be false", path)
		}
	}

	if status, _ := s.request("PUT", "/api/v1/actividades/999", map[string]int{"cuota": 3}); status != fiber.StatusNotFound {
		t.Fatalf("PUT missing: want=404 got=%d", status)
	}
	if status, _ := s.request("DELETE", "/api/v1/alumnos/999", nil); status != fiber.StatusNotFound {
		t.Fatalf("DELETE missing: want=404 got=%d", status)
	}
	if status, _ := s.request("GET", "/api/v1/nope", nil); status != fiber.StatusNotFound {
		t.Fatalf("unknown route: want=404 got=%d", status)
	}
}

func TestValidationFailures(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	tests := []struct {
		name      string
		method    string
		path      string
		body      interface{}
		wantField string
	}{
		{"activity missing titulo", "POST", "/api/v1/actividades", map[string]interface{}{"descripcion": "x", "horario": "x", "etapa_educativa": "x", "cuota": 1}, "titulo"},
		{"activity negative cuota", "POST", "/api/v1/actividades", map[string]interface{}{"titulo": "x", "descripcion": "x", "horario": "x", "etapa_educativa": "x", "cuota": -1}, "cuota"},
		{"category too long", "POST", "/api/v1/categorias", map[string]string{"nombre": strings.Repeat("a", 256), "descripcion": "x"}, "nombre"},
		{"student bad email", "POST", "/api/v1/alumnos", guardian("not-an-email"), "email_responsable"},
		{"student long phone", "POST", "/api/v1/alumnos", func() map[string]interface{} {
			g := guardian("a@example.com")
			g["telefono_responsable"] = "1234567890123456"
			return g
		}(), "telefono_responsable"},
		{"product missing details", "POST", "/api/v1/products", map[string]string{"name": "Cuaderno"}, "details"},
		{"book missing author", "POST", "/api/v1/books", map[string]string{"title": "Platero y yo"}, "author"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := s.request(tc.method, tc.path, tc.body)
			if status != fiber.StatusUnprocessableEntity {
				t.Fatalf("want=422 got=%d (%s)", status, env.Message)
			}
			if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("unexpected error: %+v", env.Error)
			}
			fields := decode[map[string]string](t, env.Data)
			if fields[tc.wantField] == "" {
				t.Fatalf("expected message for %s, got=%v", tc.wantField, fields)
			}
		})
	}

	// Nothing was written
	var activities, students int64
	s.db.Model(&model.Activity{}).Count(&activities)
	s.db.Model(&model.Student{}).Count(&students)
	if activities != 0 || students != 0 {
		t.Fatalf("rows created by invalid requests: activities=%d students=%d", activities, students)
	}

	req := httptest.NewRequest("POST", "/api/v1/categorias", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	if status, _ := s.do(req); status != fiber.StatusBadRequest {
		t.Fatalf("malformed body: want=400 got=%d", status)
	}
}

func TestPartialUpdate(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/actividades", soccer())
	created := decode[model.Activity](t, env.Data)
	path := "/api/v1/actividades/" + itoa(created.ID)

	status, env := s.request("PUT", path, map[string]interface{}{"horario": "Jueves 18:00"})
	if status != fiber.StatusOK {
		t.Fatalf("update: want=200 got=%d", status)
	}
	updated := decode[model.Activity](t, env.Data)
	if updated.Schedule != "Jueves 18:00" || updated.Title != created.Title || updated.Fee != created.Fee ||
		updated.Description != created.Description || updated.EducationStage != created.EducationStage {
		t.Fatalf("unexpected update: before=%+v after=%+v", created, updated)
	}

	status, env = s.request("PUT", path, map[string]interface{}{"titulo": ""})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("empty titulo: want=422 got=%d", status)
	}

	status, _ = s.request("PUT", path, nil)
	if status != fiber.StatusOK {
		t.Fatalf("empty update: want=200 got=%d", status)
	}

	_, env = s.request("PUT", path, map[string]interface{}{"image": "https://cdn.example.com/a.png"})
	if got := decode[model.Activity](t, env.Data); got.Image == nil {
		t.Fatalf("image not set: %+v", got)
	}
	status, env = s.request("PUT", path, map[string]interface{}{"image": nil})
	cleared := decode[model.Activity](t, env.Data)
	if status != fiber.StatusOK || cleared.Image != nil || cleared.Schedule != "Jueves 18:00" {
		t.Fatalf("explicit null: status=%d activity=%+v", status, cleared)
	}
}

func TestDuplicateGuardianEmail(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	status, _ := s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	if status != fiber.StatusCreated {
		t.Fatalf("first student: want=201 got=%d", status)
	}

	status, env := s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("duplicate: want=422 got=%d", status)
	}
	fields := decode[map[string]string](t, env.Data)
	if !strings.Contains(fields["email_responsable"], "already been taken") {
		t.Fatalf("unexpected message: %v", fields)
	}

	var count int64
	s.db.Model(&model.Student{}).Count(&count)
	if count != 1 {
		t.Fatalf("students: want=1 got=%d", count)
	}
}

func TestEnrollmentRequests(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/actividades", soccer())
	activity := decode[model.Activity](t, env.Data)
	_, env = s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	student := decode[model.Student](t, env.Data)

	status, env := s.request("POST", "/api/v1/actividades/"+itoa(activity.ID)+"/alumnos/"+itoa(student.ID),
		map[string]string{"estado": "aceptada", "fecha": "2026-09-01T10:00:00Z"})
	if status != fiber.StatusOK {
		t.Fatalf("enroll: want=200 got=%d (%s)", status, env.Message)
	}
	enrollment := decode[model.EnrollmentRequest](t, env.Data)
	if enrollment.Status != model.EnrollmentAccepted || enrollment.RequestedAt.Year() != 2026 {
		t.Fatalf("unexpected enrollment: %+v", enrollment)
	}

	status, _ = s.request("POST", "/api/v1/actividades/"+itoa(activity.ID)+"/alumnos/"+itoa(student.ID),
		map[string]string{"estado": "borrada"})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("bad estado: want=422 got=%d", status)
	}

	_, env = s.request("GET", "/api/v1/actividades/"+itoa(activity.ID)+"/alumnos", nil)
	if students := decode[[]model.Student](t, env.Data); len(students) != 1 {
		t.Fatalf("students of activity: %+v", students)
	}

	path := "/api/v1/solicitudes/" + itoa(enrollment.ID)
	status, env = s.request("PUT", path, map[string]string{"estado": "rechazada"})
	if status != fiber.StatusOK {
		t.Fatalf("update solicitud: want=200 got=%d", status)
	}
	if got := decode[model.EnrollmentRequest](t, env.Data); got.Status != model.EnrollmentRejected {
		t.Fatalf("estado: got=%q", got.Status)
	}

	_, env = s.request("GET", "/api/v1/solicitudes", nil)
	if list := decode[[]model.EnrollmentRequest](t, env.Data); len(list) != 1 {
		t.Fatalf("solicitudes: %+v", list)
	}
}

func TestEnrollFechaHonoredOnBothSides(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/actividades", soccer())
	activity := decode[model.Activity](t, env.Data)
	_, env = s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	first := decode[model.Student](t, env.Data)
	_, env = s.request("POST", "/api/v1/alumnos", guardian("leo@example.com"))
	second := decode[model.Student](t, env.Data)

	paths := []string{
		"/api/v1/actividades/" + itoa(activity.ID) + "/alumnos/" + itoa(first.ID),
		"/api/v1/alumnos/" + itoa(second.ID) + "/actividades/" + itoa(activity.ID),
	}
	for _, path := range paths {
		status, env := s.request("POST", path, map[string]string{"estado": "aceptada", "fecha": "2020-01-02T03:04:05Z"})
		if status != fiber.StatusOK {
			t.Fatalf("%s: want=200 got=%d (%s)", path, status, env.Message)
		}
		got := decode[model.EnrollmentRequest](t, env.Data)
		if !got.RequestedAt.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)) || got.Status != model.EnrollmentAccepted {
			t.Fatalf("%s: fecha/estado not honored: %+v", path, got)
		}
	}
}

func TestProducts(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	status, env := s.request("GET", "/api/v1/products", nil)
	if status != fiber.StatusOK || env.Message != "No Products Available" {
		t.Fatalf("empty list: got=%d %q", status, env.Message)
	}

	var lastID uint
	for i := 0; i < 11; i++ {
		status, env = s.request("POST", "/api/v1/products", map[string]string{"name": "Cuaderno", "details": "A4"})
		if status != fiber.StatusCreated || env.Message != "Product Create Successful" {
			t.Fatalf("create #%d: got=%d %q", i, status, env.Message)
		}
		lastID = decode[model.Product](t, env.Data).ID
	}

	_, env = s.request("GET", "/api/v1/products?page=2", nil)
	if page := decode[[]model.Product](t, env.Data); len(page) != 1 {
		t.Fatalf("page 2: want 1 item got=%d", len(page))
	}
	if env.Pagination == nil || env.Pagination.Total != 11 || env.Pagination.TotalPages != 2 || env.Pagination.CurrentPage != 2 {
		t.Fatalf("unexpected pagination: %+v", env.Pagination)
	}

	path := "/api/v1/products/" + itoa(lastID)
	status, env = s.request("PUT", path, map[string]string{"name": "Libreta"})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("update without details: want=422 got=%d", status)
	}
	status, env = s.request("PUT", path, map[string]string{"name": "Libreta", "details": "A5"})
	if status != fiber.StatusOK || env.Message != "Product Update Successful" {
		t.Fatalf("update: got=%d %q", status, env.Message)
	}
	if p := decode[model.Product](t, env.Data); p.Name != "Libreta" || p.Details != "A5" {
		t.Fatalf("updated product: %+v", p)
	}

	status, env = s.request("DELETE", path, nil)
	if status != fiber.StatusOK || env.Message != "Product Deleted Successfully" {
		t.Fatalf("delete: got=%d %q", status, env.Message)
	}
	status, env = s.request("DELETE", path, nil)
	if status != fiber.StatusNotFound || env.Message != "Product Not Found" {
		t.Fatalf("delete again: got=%d %q", status, env.Message)
	}
}

func TestBooks(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	status, env := s.request("POST", "/api/v1/books", map[string]string{"title": "Platero y yo", "author": "Juan Ramón Jiménez"})
	if status != fiber.StatusCreated {
		t.Fatalf("create: want=201 got=%d", status)
	}
	book := decode[model.Book](t, env.Data)
	if book.Title != "Platero y yo" {
		t.Fatalf("validated payload not persisted: %+v", book)
	}

	path := "/api/v1/books/" + itoa(book.ID)
	_, env = s.request("PUT", path, map[string]string{"author": "J. R. Jiménez"})
	if got := decode[model.Book](t, env.Data); got.Title != "Platero y yo" || got.Author != "J. R. Jiménez" {
		t.Fatalf("partial update: %+v", got)
	}

	status, env = s.request("DELETE", path, nil)
	if status != fiber.StatusOK || env.Message != "Book deleted successfully" {
		t.Fatalf("delete: got=%d %q", status, env.Message)
	}
}

func TestAuditLogRecordsWrites(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	s.request("POST", "/api/v1/categorias", map[string]string{"nombre": "Sports", "descripcion": "Deportes"})
	s.request("GET", "/api/v1/categorias", nil)
	s.request("PUT", "/api/v1/categorias/1", map[string]string{"nombre": "Deporte"})
	s.request("DELETE", "/api/v1/categorias/55", nil)

	var logs []model.AuditLog
	s.db.Order("id ASC").Find(&logs)
	if len(logs) != 3 {
		t.Fatalf("audit rows: want=3 got=%d", len(logs))
	}

	want := []struct {
		action     string
		resourceID uint
		status     int
	}{
		{"POST", 0, fiber.StatusCreated},
		{"PUT", 1, fiber.StatusOK},
		{"DELETE", 55, fiber.StatusNotFound},
	}
	for i, w := range want {
		got := logs[i]
		if got.Action != w.action || got.ResourceID != w.resourceID || got.StatusCode != w.status || got.Resource != "categorias" {
			t.Fatalf("row %d: want=%+v got=%+v", i, w, got)
		}
		if got.RequestID == "" {
			t.Fatalf("row %d: missing request id", i)
		}
	}
	if !strings.Contains(string(logs[0].Payload), "Sports") {
		t.Fatalf("payload not recorded: %s", logs[0].Payload)
	}
}

func TestListAuditLogs(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	s.request("POST", "/api/v1/categorias", map[string]string{"nombre": "Sports", "descripcion": "Deportes"})
	s.request("POST", "/api/v1/books", map[string]string{"title": "Marianela", "author": "Galdós"})
	s.request("PUT", "/api/v1/categorias/1", map[string]string{"nombre": "Deporte"})

	status, env := s.request("GET", "/api/v1/audit-logs?resource=categorias", nil)
	if status != fiber.StatusOK || env.Pagination == nil {
		t.Fatalf("list: status=%d env=%+v", status, env)
	}
	logs := decode[[]model.AuditLog](t, env.Data)
	if len(logs) != 2 || env.Pagination.Total != 2 {
		t.Fatalf("categorias rows: want=2 got=%d total=%d", len(logs), env.Pagination.Total)
	}
	if logs[0].Action != "PUT" {
		t.Fatalf("expected newest first, got=%s", logs[0].Action)
	}

	status, env = s.request("GET", "/api/v1/audit-logs?action=POST&limit=1", nil)
	if status != fiber.StatusOK || env.Pagination.Total != 2 || env.Pagination.TotalPages != 2 {
		t.Fatalf("action filter: status=%d pagination=%+v", status, env.Pagination)
	}

	status, env = s.request("GET", "/api/v1/audit-logs/"+itoa(logs[1].ID), nil)
	entry := decode[model.AuditLog](t, env.Data)
	if status != fiber.StatusOK || entry.Resource != "categorias" || entry.Action != "POST" {
		t.Fatalf("get: status=%d entry=%+v", status, entry)
	}

	if status, _ := s.request("GET", "/api/v1/audit-logs/999", nil); status != fiber.StatusNotFound {
		t.Fatalf("missing entry: want=404 got=%d", status)
	}
}

func TestAuditLogsHideGuardianContact(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	if status, _ := s.request("POST", "/api/v1/alumnos", guardian("secret.parent@example.com")); status != fiber.StatusCreated {
		t.Fatalf("create student: want=201 got=%d", status)
	}

	status, env := s.request("GET", "/api/v1/audit-logs?resource=alumnos", nil)
	if status != fiber.StatusOK {
		t.Fatalf("audit logs: want=200 got=%d", status)
	}
	data := string(env.Data)
	if strings.Contains(data, "secret.parent@example.com") || strings.Contains(data, "600000000") {
		t.Fatalf("guardian contact leaked into audit trail: %s", data)
	}
	logs := decode[[]model.AuditLog](t, env.Data)
	if len(logs) != 1 || !strings.Contains(string(logs[0].Payload), "Ruiz") {
		t.Fatalf("expected redacted payload to keep other fields: %s", data)
	}
}

func TestStatsOverview(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	s.request("POST", "/api/v1/actividades", soccer())
	s.request("POST", "/api/v1/alumnos", guardian("eva@example.com"))
	s.request("POST", "/api/v1/actividades/1/alumnos/1", nil)

	status, env := s.request("GET", "/api/v1/stats", nil)
	if status != fiber.StatusOK {
		t.Fatalf("stats: want=200 got=%d", status)
	}
	stats := decode[struct {
		Activities  int64            `json:"actividades"`
		Students    int64            `json:"alumnos"`
		Enrollments map[string]int64 `json:"solicitudes"`
		WritesToday int64            `json:"writes_last_24h"`
	}](t, env.Data)
	if stats.Activities != 1 || stats.Students != 1 || stats.Enrollments["pendiente"] != 1 || stats.WritesToday != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{RateLimitRequests: 2})

	for i := 0; i < 2; i++ {
		if status, _ := s.request("GET", "/api/v1/categorias", nil); status != fiber.StatusOK {
			t.Fatalf("request #%d: want=200 got=%d", i+1, status)
		}
	}
	status, env := s.request("GET", "/api/v1/categorias", nil)
	if status != fiber.StatusTooManyRequests || env.Error == nil || env.Error.Code != "TOO_MANY_REQUESTS" {
		t.Fatalf("over limit: want=429 got=%d %+v", status, env.Error)
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	status, env := s.request("GET", "/api/v1/ping", nil)
	if status != fiber.StatusOK {
		t.Fatalf("ping: want=200 got=%d", status)
	}
	health := decode[map[string]string](t, env.Data)
	if health["database"] != "ok" || health["redis"] != "disabled" {
		t.Fatalf("unexpected health: %v", health)
	}
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	images := &fakeImages{}
	s := newTestServer(t, images, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/actividades", soccer())
	activity := decode[model.Activity](t, env.Data)
	path := "/api/v1/actividades/" + itoa(activity.ID) + "/image"

	status, env := s.do(uploadRequest(t, path, "cartel.png", []byte("png-bytes")))
	if status != fiber.StatusOK {
		t.Fatalf("upload: want=200 got=%d (%s)", status, env.Message)
	}
	updated := decode[model.Activity](t, env.Data)
	if updated.Image == nil || !strings.HasPrefix(*updated.Image, "https://cdn.example.com/actividades/") {
		t.Fatalf("image not set: %+v", updated.Image)
	}
	if len(images.uploaded) != 1 {
		t.Fatalf("uploads: want=1 got=%d", len(images.uploaded))
	}

	status, _ = s.do(uploadRequest(t, path, "cartel.pdf", []byte("%PDF")))
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("pdf upload: want=422 got=%d", status)
	}

	status, _ = s.do(uploadRequest(t, "/api/v1/actividades/999/image", "cartel.png", []byte("x")))
	if status != fiber.StatusNotFound {
		t.Fatalf("missing activity: want=404 got=%d", status)
	}

	images.fail = true
	status, _ = s.do(uploadRequest(t, path, "otro.jpg", []byte("jpg")))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("storage failure: want=500 got=%d", status)
	}
}

func TestUploadImageWithoutStorage(t *testing.T) {
	s := newTestServer(t, nil, middleware.SecurityConfig{})

	_, env := s.request("POST", "/api/v1/actividades", soccer())
	activity := decode[model.Activity](t, env.Data)

	status, _ := s.do(uploadRequest(t, "/api/v1/actividades/"+itoa(activity.ID)+"/image", "cartel.png", []byte("x")))
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("want=503 got=%d", status)
	}
}
