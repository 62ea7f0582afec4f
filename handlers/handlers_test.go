package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/German880/Front-inder/backend"
	"github.com/German880/Front-inder/catalogos"
	"github.com/German880/Front-inder/handlers"
	"github.com/German880/Front-inder/historia"
	"github.com/German880/Front-inder/middleware"
	"github.com/German880/Front-inder/models"
	"github.com/German880/Front-inder/routes"
)

var itemsCatalogo = map[string][]models.CatalogoItem{
	models.CatalogoTipoDocumento:    {{ID: "td-1", Nombre: "Cédula de Ciudadanía", Activo: true}},
	models.CatalogoSexo:             {{ID: "s-1", Nombre: "Femenino", Activo: true}},
	models.CatalogoEstadoDeportista: {
		{ID: "ed-1", Nombre: "Activo", Activo: true},
		{ID: "ed-2", Nombre: "Abierta", Activo: true},
	},
	models.CatalogoTipoCita:         {{ID: "tc-1", Nombre: "Control", Activo: true}},
	models.CatalogoEstadoCita: {
		{ID: "ec-1", Nombre: "Pendiente", Activo: true},
		{ID: "ec-2", Nombre: "Cancelada", Activo: true},
		{ID: "ec-3", Nombre: "Confirmada", Activo: true},
	},
}

// entorno levanta un backend falso y la aplicación con todas las rutas
type entorno struct {
	app *fiber.App
	mux *http.ServeMux
	srv *httptest.Server
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	e := &entorno{mux: http.NewServeMux()}
	e.mux.HandleFunc("GET /api/v1/catalogos/{nombre}/items", func(w http.ResponseWriter, r *http.Request) {
		items, ok := itemsCatalogo[r.PathValue("nombre")]
		if !ok {
			responder(w, http.StatusNotFound, map[string]string{"detail": "Catálogo no encontrado"})
			return
		}
		responder(w, http.StatusOK, items)
	})
	e.srv = httptest.NewServer(e.mux)
	t.Cleanup(e.srv.Close)

	cliente := backend.New(e.srv.URL+"/api/v1", 5*time.Second, zerolog.Nop())
	backend.SetClient(cliente)
	catalogos.SetCache(catalogos.New(cliente, time.Hour, zerolog.Nop()))
	historia.SetStore(historia.NewStore(time.Hour, zerolog.Nop()))
	handlers.Configurar(handlers.Opciones{MaxUploadBytes: 1 << 20})

	e.app = fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.SetupRoutes(e.app, routes.Options{
		Log:            zerolog.Nop(),
		CORSOrigins:    "*",
		RateLimit:      middleware.DefaultRateLimit,
		RequestTimeout: 5 * time.Second,
	})
	e.app.Use(handlers.RutaNoEncontrada)
	return e
}

func responder(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type respuesta struct {
	status int
	header http.Header
	body   handlers.StandardResponse
}

// dato decodifica Data[0] en v
func (r respuesta) dato(t *testing.T, v interface{}) {
	t.Helper()
	if len(r.body.Body.Data) == 0 {
		t.Fatalf("response without data: %+v", r.body)
	}
	raw, err := json.Marshal(r.body.Body.Data[0])
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, raw)
	}
}

func (r respuesta) mensajeError(t *testing.T) string {
	t.Helper()
	var d struct {
		Error string `json:"error"`
	}
	r.dato(t, &d)
	return d.Error
}

func (e *entorno) hacer(t *testing.T, req *http.Request) respuesta {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	out := respuesta{status: resp.StatusCode, header: resp.Header}
	raw, _ := io.ReadAll(resp.Body)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out.body); err != nil {
			t.Fatalf("decode response: %v (%s)", err, raw)
		}
	}
	return out
}

func (e *entorno) pedir(t *testing.T, method, path string, body interface{}) respuesta {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.hacer(t, req)
}

func TestCrearDeportista_Validacion(t *testing.T) {
	e := nuevoEntorno(t)
	llamadas := 0
	e.mux.HandleFunc("POST /api/v1/deportistas", func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		responder(w, http.StatusCreated, models.Deportista{ID: "d-1"})
	})

	res := e.pedir(t, http.MethodPost, "/api/v1/deportistas", map[string]string{
		"nombres":          "Ana",
		"fecha_nacimiento": "2090-01-01",
		"email":            "no-es-correo",
	})
	if res.status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.status)
	}
	if res.body.Body.IntCode != "F10" {
		t.Errorf("intCode = %s, want F10", res.body.Body.IntCode)
	}
	var d struct {
		Campos map[string]string `json:"campos"`
	}
	res.dato(t, &d)
	want := map[string]string{
		"apellidos":        "Requerido",
		"numero_documento": "Requerido",
		"fecha_nacimiento": "La fecha de nacimiento no puede ser futura",
		"email":            "Correo electrónico inválido",
	}
	for campo, msg := range want {
		if d.Campos[campo] != msg {
			t.Errorf("campos[%s] = %q, want %q", campo, d.Campos[campo], msg)
		}
	}
	if llamadas != 0 {
		t.Errorf("backend called %d times on invalid input", llamadas)
	}
}

func TestCrearDeportista_VistaConEtiquetas(t *testing.T) {
	e := nuevoEntorno(t)
	var recibido models.DeportistaCreate
	e.mux.HandleFunc("POST /api/v1/deportistas", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&recibido)
		responder(w, http.StatusCreated, models.Deportista{
			ID:              "d-1",
			TipoDocumentoID: recibido.TipoDocumentoID,
			NumeroDocumento: recibido.NumeroDocumento,
			Nombres:         recibido.Nombres,
			Apellidos:       recibido.Apellidos,
			FechaNacimiento: recibido.FechaNacimiento,
			SexoID:          recibido.SexoID,
			EstadoID:        recibido.EstadoID,
		})
	})

	res := e.pedir(t, http.MethodPost, "/api/v1/deportistas", models.DeportistaCreate{
		TipoDocumentoID: "td-1",
		NumeroDocumento: " 1020304050 ",
		Nombres:         " Ana María ",
		Apellidos:       "Ruiz",
		FechaNacimiento: "2000-01-15",
		SexoID:          "s-1",
		EstadoID:        "ed-1",
	})
	if res.status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%+v)", res.status, res.body)
	}
	if recibido.Nombres != "Ana María" || recibido.NumeroDocumento != "1020304050" {
		t.Errorf("fields not trimmed before sending: %+v", recibido)
	}
	var v models.DeportistaVista
	res.dato(t, &v)
	if v.NombreCompleto != "Ana María Ruiz" {
		t.Errorf("nombre_completo = %q", v.NombreCompleto)
	}
	if v.Edad == nil || *v.Edad < 25 {
		t.Errorf("edad = %v, want computed age", v.Edad)
	}
	if v.TipoDocumento != "Cédula de Ciudadanía" || v.Sexo != "Femenino" || v.Estado != "Activo" {
		t.Errorf("labels = %q %q %q", v.TipoDocumento, v.Sexo, v.Estado)
	}
}

func TestListarDeportistas_Paginacion(t *testing.T) {
	e := nuevoEntorno(t)
	var query string
	e.mux.HandleFunc("GET /api/v1/deportistas", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		responder(w, http.StatusOK, models.Paginado[models.Deportista]{
			Items:      []models.Deportista{{ID: "d-1", Nombres: "Ana", Apellidos: "Ruiz", SexoID: "s-1"}},
			Total:      6,
			Page:       2,
			PageSize:   5,
			TotalPages: 2,
		})
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"page size too large", "/api/v1/deportistas?page_size=500", http.StatusBadRequest},
		{"page zero", "/api/v1/deportistas?page=0", http.StatusBadRequest},
		{"not a number", "/api/v1/deportistas?page=abc", http.StatusBadRequest},
		{"valid", "/api/v1/deportistas?page=2&page_size=5", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.pedir(t, http.MethodGet, tt.path, nil)
			if res.status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", res.status, tt.wantStatus)
			}
		})
	}

	if query != "page=2&page_size=5" {
		t.Errorf("backend query = %q", query)
	}
	res := e.pedir(t, http.MethodGet, "/api/v1/deportistas?page=2&page_size=5", nil)
	var pagina struct {
		Items      []models.DeportistaVista `json:"items"`
		Total      int                      `json:"total"`
		TotalPages int                      `json:"total_pages"`
	}
	res.dato(t, &pagina)
	if pagina.Total != 6 || pagina.TotalPages != 2 || len(pagina.Items) != 1 {
		t.Fatalf("unexpected page: %+v", pagina)
	}
	if pagina.Items[0].Sexo != "Femenino" {
		t.Errorf("sexo label = %q", pagina.Items[0].Sexo)
	}
}

func TestDeportistasConCitaHoy_Filtro(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/citas/deportistas-con-citas-hoy", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, []models.Deportista{
			{ID: "d-1", Nombres: "Ana", Apellidos: "Ruiz", NumeroDocumento: "111"},
			{ID: "d-2", Nombres: "Luis", Apellidos: "Gómez", NumeroDocumento: "222"},
		})
	})

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"d-1", "d-2"}},
		{"ruiz", []string{"d-1"}},
		{"222", []string{"d-2"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			res := e.pedir(t, http.MethodGet, "/api/v1/deportistas/con-cita-hoy?q="+tt.q, nil)
			var lista []models.DeportistaVista
			res.dato(t, &lista)
			if len(lista) != len(tt.want) {
				t.Fatalf("got %d deportistas, want %d", len(lista), len(tt.want))
			}
			for i, id := range tt.want {
				if lista[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, lista[i].ID, id)
				}
			}
		})
	}
}

func TestErroresDelBackend(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/deportistas/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "no-existe":
			responder(w, http.StatusNotFound, map[string]string{"detail": "Deportista no encontrado"})
		case "sin-sesion":
			responder(w, http.StatusUnauthorized, map[string]string{"detail": "No autenticado"})
		}
	})

	res := e.pedir(t, http.MethodGet, "/api/v1/deportistas/no-existe", nil)
	if res.status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.status)
	}
	if got := res.mensajeError(t); got != "Deportista no encontrado" {
		t.Errorf("error = %q", got)
	}

	res = e.pedir(t, http.MethodGet, "/api/v1/deportistas/sin-sesion", nil)
	if res.status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.status)
	}
	if cookie := res.header.Get("Set-Cookie"); !strings.Contains(cookie, middleware.CookieToken+"=") {
		t.Errorf("auth cookie not cleared: %q", cookie)
	}
}

func TestBackendNoDisponible(t *testing.T) {
	e := nuevoEntorno(t)
	e.srv.Close()

	res := e.pedir(t, http.MethodGet, "/api/v1/deportistas/d-1", nil)
	if res.status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", res.status)
	}
	if res.body.Body.IntCode != "F11" {
		t.Errorf("intCode = %s", res.body.Body.IntCode)
	}
}

func TestTokenSeReenvia(t *testing.T) {
	e := nuevoEntorno(t)
	var auth string
	e.mux.HandleFunc("GET /api/v1/formularios", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		responder(w, http.StatusOK, []models.Formulario{{ID: "f-1", Nombre: "Historia", Modulo: r.URL.Query().Get("modulo")}})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/formularios?modulo=historia", nil)
	req.Header.Set("Authorization", "Bearer opaco-123")
	res := e.hacer(t, req)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	if auth != "Bearer opaco-123" {
		t.Errorf("backend Authorization = %q", auth)
	}
	var lista []models.Formulario
	res.dato(t, &lista)
	if len(lista) != 1 || lista[0].Modulo != "historia" {
		t.Errorf("unexpected formularios: %+v", lista)
	}
}

func TestEliminarRequiereToken(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("DELETE /api/v1/deportistas/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res := e.pedir(t, http.MethodDelete, "/api/v1/deportistas/d-1", nil)
	if res.status != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want 401", res.status)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/deportistas/d-1", nil)
	req.Header.Set("Authorization", "Bearer opaco")
	res = e.hacer(t, req)
	if res.status != http.StatusOK || res.body.Body.IntCode != "S13" {
		t.Fatalf("with token: status = %d intCode = %s", res.status, res.body.Body.IntCode)
	}
}

// wizardBackend registra lo que el asistente envía al backend
type wizardBackend struct {
	mu       sync.Mutex
	historia models.HistoriaClinica
	lotes    []models.RespuestasBatch
	grupos   int
}

func (e *entorno) conWizardBackend() *wizardBackend {
	wb := &wizardBackend{}
	e.mux.HandleFunc("GET /api/v1/deportistas/{id}", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Deportista{ID: r.PathValue("id"), Nombres: "Ana", Apellidos: "Ruiz"})
	})
	e.mux.HandleFunc("POST /api/v1/historias_clinicas", func(w http.ResponseWriter, r *http.Request) {
		wb.mu.Lock()
		defer wb.mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&wb.historia)
		h := wb.historia
		h.ID = "h-1"
		responder(w, http.StatusCreated, h)
	})
	e.mux.HandleFunc("POST /api/v1/respuesta_grupos", func(w http.ResponseWriter, r *http.Request) {
		wb.mu.Lock()
		defer wb.mu.Unlock()
		wb.grupos++
		responder(w, http.StatusCreated, models.RespuestaGrupo{ID: "g-" + string(rune('0'+wb.grupos)), HistoriaClinicaID: "h-1"})
	})
	e.mux.HandleFunc("POST /api/v1/formulario_respuestas/batch", func(w http.ResponseWriter, r *http.Request) {
		var b models.RespuestasBatch
		_ = json.NewDecoder(r.Body).Decode(&b)
		wb.mu.Lock()
		wb.lotes = append(wb.lotes, b)
		wb.mu.Unlock()
		responder(w, http.StatusCreated, []models.FormularioRespuesta{})
	})
	return wb
}

func TestWizard_Flujo(t *testing.T) {
	e := nuevoEntorno(t)
	wb := e.conWizardBackend()

	res := e.pedir(t, http.MethodPost, "/api/v1/wizard", map[string]string{"deportista_id": "d-1"})
	if res.status != http.StatusCreated {
		t.Fatalf("iniciar: status = %d (%+v)", res.status, res.body)
	}
	var v historia.Vista
	res.dato(t, &v)
	if v.HistoriaID != "h-1" || v.PasoActual != 1 || v.TotalPasos != 7 {
		t.Fatalf("unexpected session: %+v", v)
	}
	if wb.historia.EstadoID != "ed-2" || wb.historia.DeportistaID != "d-1" {
		t.Errorf("historia sent = %+v", wb.historia)
	}
	if _, err := time.Parse(models.FormatoFecha, wb.historia.FechaApertura); err != nil {
		t.Errorf("fecha_apertura = %q", wb.historia.FechaApertura)
	}
	base := "/api/v1/wizard/" + v.ID

	// Sin los campos obligatorios no avanza
	res = e.pedir(t, http.MethodPost, base+"/siguiente", nil)
	if res.status != http.StatusBadRequest {
		t.Fatalf("siguiente sin datos: status = %d", res.status)
	}
	var val struct {
		Campos map[string]string `json:"campos"`
	}
	res.dato(t, &val)
	if val.Campos["motivo_consulta"] == "" {
		t.Errorf("missing motivo_consulta error: %+v", val.Campos)
	}

	res = e.pedir(t, http.MethodPut, base+"/pasos/1", map[string]interface{}{"campo_inventado": "x"})
	if res.status != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", res.status)
	}

	res = e.pedir(t, http.MethodPut, base+"/pasos/1", map[string]interface{}{
		"tipo_cita_id":      "tc-1",
		"motivo_consulta":   "Dolor lumbar",
		"enfermedad_actual": "Dolor de dos semanas",
	})
	if res.status != http.StatusOK {
		t.Fatalf("actualizar paso: status = %d (%+v)", res.status, res.body)
	}

	res = e.pedir(t, http.MethodPost, base+"/siguiente", nil)
	if res.status != http.StatusOK {
		t.Fatalf("siguiente: status = %d (%+v)", res.status, res.body)
	}
	res.dato(t, &v)
	if v.PasoActual != 2 || !v.Pasos[0].Completado || v.Pasos[0].GrupoID != "g-1" {
		t.Errorf("after siguiente: paso %d, paso1 %+v", v.PasoActual, v.Pasos[0])
	}
	if len(wb.lotes) != 1 || wb.lotes[0].GrupoID != "g-1" {
		t.Fatalf("batches = %+v", wb.lotes)
	}
	valores := map[string]string{}
	for _, r := range wb.lotes[0].Respuestas {
		valores[r.Campo] = r.Valor
	}
	if valores["motivo_consulta"] != "Dolor lumbar" {
		t.Errorf("batch values = %+v", valores)
	}

	res = e.pedir(t, http.MethodPost, base+"/anterior", nil)
	res.dato(t, &v)
	if v.PasoActual != 1 {
		t.Errorf("anterior: paso = %d, want 1", v.PasoActual)
	}

	res = e.pedir(t, http.MethodPost, base+"/ir/9", nil)
	if res.status != http.StatusBadRequest {
		t.Errorf("ir a paso 9: status = %d, want 400", res.status)
	}
	res = e.pedir(t, http.MethodPost, base+"/ir/7", nil)
	res.dato(t, &v)
	if v.PasoActual != 7 || v.Progreso != 100 {
		t.Errorf("ir a 7: paso %d progreso %d", v.PasoActual, v.Progreso)
	}
}

func TestWizard_Listas(t *testing.T) {
	e := nuevoEntorno(t)
	e.conWizardBackend()

	res := e.pedir(t, http.MethodPost, "/api/v1/wizard", map[string]string{"deportista_id": "d-1"})
	var v historia.Vista
	res.dato(t, &v)
	base := "/api/v1/wizard/" + v.ID

	res = e.pedir(t, http.MethodPost, base+"/antecedentes", map[string]string{"codigo": "ZZ99"})
	if res.status != http.StatusBadRequest {
		t.Fatalf("unknown code: status = %d", res.status)
	}
	if got := res.mensajeError(t); got != historia.ErrCodigoNoVerificado.Error() {
		t.Errorf("error = %q", got)
	}

	res = e.pedir(t, http.MethodPost, base+"/antecedentes", map[string]string{"codigo": " 8a80 ", "observaciones": "desde niña"})
	if res.status != http.StatusOK {
		t.Fatalf("antecedente: status = %d (%+v)", res.status, res.body)
	}
	res.dato(t, &v)
	if len(v.AntecedentesPersonales) != 1 || v.AntecedentesPersonales[0].NombreEnfermedad != "Migraña" {
		t.Errorf("antecedentes = %+v", v.AntecedentesPersonales)
	}

	res = e.pedir(t, http.MethodPost, base+"/antecedentes-familiares", map[string]string{"codigo": "8A80", "familiar": "Vecino"})
	if res.status != http.StatusBadRequest {
		t.Errorf("invalid familiar: status = %d", res.status)
	}

	res = e.pedir(t, http.MethodPost, base+"/vacunas", map[string]string{"vacuna": "Tétanos"})
	res.dato(t, &v)
	if len(v.Vacunas) != 1 {
		t.Errorf("vacunas = %v", v.Vacunas)
	}

	res = e.pedir(t, http.MethodPost, base+"/remisiones", map[string]string{"especialista": "Fisiatra", "motivo": "Valoración"})
	res.dato(t, &v)
	if len(v.Remisiones) != 1 || v.Remisiones[0].Prioridad != historia.PrioridadNormal {
		t.Errorf("remisiones = %+v", v.Remisiones)
	}

	res = e.pedir(t, http.MethodDelete, base+"/antecedentes/5", nil)
	if res.status != http.StatusBadRequest {
		t.Errorf("delete out of range: status = %d", res.status)
	}
	res = e.pedir(t, http.MethodDelete, base+"/antecedentes/0", nil)
	res.dato(t, &v)
	if len(v.AntecedentesPersonales) != 0 {
		t.Errorf("antecedente not removed: %+v", v.AntecedentesPersonales)
	}

	res = e.pedir(t, http.MethodDelete, base, nil)
	if res.status != http.StatusOK {
		t.Fatalf("eliminar sesión: status = %d", res.status)
	}
	res = e.pedir(t, http.MethodGet, base, nil)
	if res.status != http.StatusNotFound {
		t.Errorf("deleted session: status = %d, want 404", res.status)
	}
}

func TestCrearCita(t *testing.T) {
	e := nuevoEntorno(t)
	var recibida models.Cita
	e.mux.HandleFunc("POST /api/v1/citas", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&recibida)
		c := recibida
		c.ID = "c-1"
		responder(w, http.StatusCreated, c)
	})

	res := e.pedir(t, http.MethodPost, "/api/v1/citas", map[string]string{"deportista_id": "d-1", "hora": "25:00"})
	if res.status != http.StatusBadRequest {
		t.Fatalf("invalid cita: status = %d", res.status)
	}

	res = e.pedir(t, http.MethodPost, "/api/v1/citas", models.Cita{
		DeportistaID: "d-1",
		Fecha:        "2025-06-10",
		Hora:         "09:30",
		TipoCitaID:   "tc-1",
	})
	if res.status != http.StatusCreated {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	if recibida.Hora != "09:30:00" || recibida.EstadoCitaID != "ec-1" {
		t.Errorf("cita sent = %+v", recibida)
	}
	var v models.CitaVista
	res.dato(t, &v)
	if v.EstadoNombre != "Pendiente" || v.HoraCorta != "09:30" || !strings.Contains(v.EstadoColor, "yellow") {
		t.Errorf("vista = %+v", v)
	}
}

func TestCatalogos_SinEstadoHistoria(t *testing.T) {
	e := nuevoEntorno(t)
	var pedidos sync.Map
	e.mux.HandleFunc("GET /api/v1/catalogos/estado_historia/items", func(w http.ResponseWriter, r *http.Request) {
		pedidos.Store("estado_historia", true)
		responder(w, http.StatusNotFound, map[string]string{"detail": "Catálogo no encontrado"})
	})
	e.mux.HandleFunc("POST /api/v1/citas", func(w http.ResponseWriter, r *http.Request) {
		var c models.Cita
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID = "c-1"
		responder(w, http.StatusCreated, c)
	})
	wb := e.conWizardBackend()

	res := e.pedir(t, http.MethodPost, "/api/v1/citas", models.Cita{
		DeportistaID: "d-1",
		Fecha:        "2025-06-10",
		Hora:         "09:30",
		TipoCitaID:   "tc-1",
	})
	if res.status != http.StatusCreated {
		t.Fatalf("crear cita: status = %d (%+v)", res.status, res.body)
	}
	res = e.pedir(t, http.MethodPost, "/api/v1/wizard", map[string]string{"deportista_id": "d-1"})
	if res.status != http.StatusCreated {
		t.Fatalf("iniciar historia: status = %d (%+v)", res.status, res.body)
	}
	if wb.historia.EstadoID != "ed-2" {
		t.Errorf("estado abierta = %q, want ed-2", wb.historia.EstadoID)
	}
	if _, ok := pedidos.Load("estado_historia"); ok {
		t.Error("estado_historia should not be part of the cached catalogs")
	}
}

func TestCatalogos_FaltaUnoRequerido(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/catalogos/estado_cita/items", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusNotFound, map[string]string{"detail": "Catálogo no encontrado"})
	})

	res := e.pedir(t, http.MethodPost, "/api/v1/citas", models.Cita{
		DeportistaID: "d-1",
		Fecha:        "2025-06-10",
		Hora:         "09:30",
		TipoCitaID:   "tc-1",
	})
	if res.status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", res.status)
	}
	if res.body.Body.IntCode != "F40" {
		t.Errorf("intCode = %s, want F40", res.body.Body.IntCode)
	}
	if got := res.mensajeError(t); got != catalogos.ErrCarga.Error() {
		t.Errorf("error = %q", got)
	}
}

func TestCancelarCita(t *testing.T) {
	e := nuevoEntorno(t)
	var cambios map[string]interface{}
	e.mux.HandleFunc("PUT /api/v1/citas/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&cambios)
		responder(w, http.StatusOK, models.Cita{ID: r.PathValue("id"), EstadoCitaID: "ec-2", Hora: "10:00:00"})
	})

	res := e.pedir(t, http.MethodPost, "/api/v1/citas/c-1/cancelar", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	if cambios["estado_cita_id"] != "ec-2" {
		t.Errorf("cambios = %+v", cambios)
	}
	var v models.CitaVista
	res.dato(t, &v)
	if !strings.Contains(v.EstadoColor, "red") {
		t.Errorf("color = %q", v.EstadoColor)
	}
}

func TestAgenda(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/citas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.Cita]{
			Items: []models.Cita{
				{ID: "c-1", Fecha: "2025-06-10", Hora: "10:00:00", EstadoCitaID: "ec-3"},
				{ID: "c-2", Fecha: "2025-06-10", Hora: "08:30:00", EstadoCitaID: "ec-1"},
				{ID: "c-3", Fecha: "2025-06-12", Hora: "09:00:00", EstadoCitaID: "ec-2"},
				{ID: "c-4", Fecha: "2025-07-01", Hora: "09:00:00", EstadoCitaID: "ec-1"},
			},
			Total:      4,
			Page:       1,
			PageSize:   100,
			TotalPages: 1,
		})
	})

	for _, dias := range []string{"40", "0", "abc"} {
		res := e.pedir(t, http.MethodGet, "/api/v1/citas/agenda?desde=2025-06-10&dias="+dias, nil)
		if res.status != http.StatusBadRequest {
			t.Errorf("dias=%s: status = %d, want 400", dias, res.status)
		}
	}
	res := e.pedir(t, http.MethodGet, "/api/v1/citas/agenda?desde=10/06/2025", nil)
	if res.status != http.StatusBadRequest {
		t.Errorf("bad desde: status = %d, want 400", res.status)
	}

	res = e.pedir(t, http.MethodGet, "/api/v1/citas/agenda?desde=2025-06-10&dias=3", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	var ag struct {
		Desde string             `json:"desde"`
		Dias  []models.DiaAgenda `json:"dias"`
	}
	res.dato(t, &ag)
	if len(ag.Dias) != 3 {
		t.Fatalf("got %d days, want 3", len(ag.Dias))
	}
	primero := ag.Dias[0]
	if len(primero.Citas) != 2 || primero.Citas[0].ID != "c-2" || primero.Citas[1].ID != "c-1" {
		t.Errorf("day 1 = %+v", primero.Citas)
	}
	if len(ag.Dias[1].Citas) != 0 {
		t.Errorf("day 2 should be empty: %+v", ag.Dias[1].Citas)
	}
	if c := ag.Dias[2].Citas; len(c) != 1 || !strings.Contains(c[0].EstadoColor, "red") {
		t.Errorf("day 3 = %+v", c)
	}
}

func TestDashboard_FuenteCaida(t *testing.T) {
	e := nuevoEntorno(t)
	manana := time.Now().AddDate(0, 0, 1).Format(models.FormatoFecha)
	e.mux.HandleFunc("GET /api/v1/deportistas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.Deportista]{
			Items: []models.Deportista{{ID: "d-1", Nombres: "Ana", Apellidos: "Ruiz", CreatedAt: "2025-06-01T10:00:00"}},
			Total: 12,
		})
	})
	e.mux.HandleFunc("GET /api/v1/historias_clinicas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})
	e.mux.HandleFunc("GET /api/v1/citas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.Cita]{
			Items: []models.Cita{
				{ID: "c-1", Fecha: manana, Hora: "09:00:00", EstadoCitaID: "ec-1", TipoCitaID: "tc-1"},
				{ID: "c-2", Fecha: manana, Hora: "10:00:00", EstadoCitaID: "ec-2"},
				{ID: "c-3", Fecha: "2020-01-01", Hora: "10:00:00", EstadoCitaID: "ec-1"},
			},
			TotalPages: 1,
		})
	})

	res := e.pedir(t, http.MethodGet, "/api/v1/dashboard", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	var stats models.EstadisticasDashboard
	res.dato(t, &stats)
	if stats.TotalDeportistas != 12 || stats.HistoriasClinicas != 0 || stats.CitasProximas != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.FuentesNoDisponibles) != 1 || stats.FuentesNoDisponibles[0] != "historias" {
		t.Errorf("fuentes_no_disponibles = %v", stats.FuentesNoDisponibles)
	}
	if len(stats.ActividadReciente) != 1 || stats.ActividadReciente[0].Tipo != models.ActividadDeportista {
		t.Errorf("actividad reciente = %+v", stats.ActividadReciente)
	}
	if len(stats.ProximasActividades) != 1 || !strings.Contains(stats.ProximasActividades[0].Descripcion, "Control") {
		t.Errorf("próximas = %+v", stats.ProximasActividades)
	}
}

func TestDashboard_ArchivosEnActividad(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/deportistas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.Deportista]{Items: []models.Deportista{}})
	})
	e.mux.HandleFunc("GET /api/v1/historias_clinicas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.HistoriaClinica]{
			Items: []models.HistoriaClinica{{
				ID:        "h-1",
				CreatedAt: "2025-06-01T10:00:00",
				Archivos: []models.ArchivoClinico{
					{ID: "a-1", RutaArchivo: "uploads/rx_rodilla.png", CreatedAt: "2025-06-02T09:00:00"},
				},
			}},
			Total: 1,
		})
	})
	e.mux.HandleFunc("GET /api/v1/citas", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.Paginado[models.Cita]{Items: []models.Cita{}, TotalPages: 1})
	})

	res := e.pedir(t, http.MethodGet, "/api/v1/dashboard", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	var raw map[string]interface{}
	res.dato(t, &raw)
	if _, ok := raw["archivos_subidos"]; ok {
		t.Errorf("archivos_subidos should not be reported: %v", raw["archivos_subidos"])
	}
	var stats models.EstadisticasDashboard
	res.dato(t, &stats)
	if len(stats.ActividadReciente) != 2 {
		t.Fatalf("actividad reciente = %+v", stats.ActividadReciente)
	}
	archivo := stats.ActividadReciente[0]
	if archivo.Tipo != models.ActividadArchivo || archivo.Descripcion != "Archivo subido: rx_rodilla.png" || archivo.Color == "" {
		t.Errorf("archivo activity = %+v", archivo)
	}
}

func TestCIE11(t *testing.T) {
	e := nuevoEntorno(t)

	res := e.pedir(t, http.MethodGet, "/api/v1/cie11/codigos/me84.2", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	var enf struct {
		Codigo string `json:"codigo"`
		Nombre string `json:"nombre"`
	}
	res.dato(t, &enf)
	if enf.Codigo != "ME84.2" || enf.Nombre != "Lumbalgia" {
		t.Errorf("got %+v", enf)
	}

	res = e.pedir(t, http.MethodGet, "/api/v1/cie11/codigos/XX00", nil)
	if res.status != http.StatusNotFound {
		t.Errorf("unknown code: status = %d, want 404", res.status)
	}

	res = e.pedir(t, http.MethodGet, "/api/v1/cie11/buscar?nombre=mi", nil)
	var busq struct {
		Sugerencias []map[string]string `json:"sugerencias"`
	}
	res.dato(t, &busq)
	if busq.Sugerencias == nil || len(busq.Sugerencias) != 0 {
		t.Errorf("short query should return an empty list, got %v", busq.Sugerencias)
	}
}

func multipartArchivo(t *testing.T, historiaID string, contenido []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if historiaID != "" {
		_ = w.WriteField("historia_clinica_id", historiaID)
	}
	fw, err := w.CreateFormFile("archivo", "rx.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(contenido)
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/archivos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSubirArchivo(t *testing.T) {
	e := nuevoEntorno(t)
	var nombre, historiaID string
	e.mux.HandleFunc("POST /api/v1/archivos_clinicos", func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("archivo")
		if err == nil {
			f.Close()
			nombre = fh.Filename
		}
		historiaID = r.FormValue("historia_clinica_id")
		responder(w, http.StatusCreated, models.ArchivoClinico{ID: "a-1", HistoriaClinicaID: historiaID, RutaArchivo: "/uploads/rx.png"})
	})

	res := e.hacer(t, multipartArchivo(t, "", []byte("png")))
	if res.status != http.StatusBadRequest {
		t.Errorf("without historia: status = %d, want 400", res.status)
	}

	res = e.hacer(t, multipartArchivo(t, "h-1", []byte("png")))
	if res.status != http.StatusCreated {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	if nombre != "rx.png" || historiaID != "h-1" {
		t.Errorf("backend got archivo=%q historia=%q", nombre, historiaID)
	}

	handlers.Configurar(handlers.Opciones{MaxUploadBytes: 4})
	res = e.hacer(t, multipartArchivo(t, "h-1", []byte("demasiado grande")))
	if res.status != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized: status = %d, want 413", res.status)
	}
}

func TestHistoriaClinicaPDF(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/documentos/{id}/historia-clinica-pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/historias/h-1/pdf", nil)
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "historia_clinica_h-1.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "%PDF-1.4" {
		t.Errorf("body = %q", body)
	}
}

func TestPlantillaPorSistema(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/plantillas_clinicas/{sistema}", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, models.PlantillaClinica{ID: "p-1", Sistema: r.PathValue("sistema"), Contenido: "Ruidos cardíacos rítmicos", Activo: true})
	})

	res := e.pedir(t, http.MethodGet, "/api/v1/plantillas/cardiovascular", nil)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d (%+v)", res.status, res.body)
	}
	var p models.PlantillaClinica
	res.dato(t, &p)
	if p.ID != "p-1" || p.Sistema != "cardiovascular" {
		t.Errorf("plantilla = %+v", p)
	}
}

func TestSaludYRutaNoEncontrada(t *testing.T) {
	e := nuevoEntorno(t)
	e.mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		responder(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	res := e.pedir(t, http.MethodGet, "/health", nil)
	if res.status != http.StatusOK || res.body.Body.IntCode != "S81" {
		t.Errorf("health: status = %d intCode = %s", res.status, res.body.Body.IntCode)
	}

	res = e.pedir(t, http.MethodGet, "/api/v1/no-existe", nil)
	if res.status != http.StatusNotFound || res.body.Body.IntCode != "F91" {
		t.Errorf("404: status = %d intCode = %s", res.status, res.body.Body.IntCode)
	}
}
