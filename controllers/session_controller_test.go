package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kiosk/entity"
	"kiosk/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func testCatalog() *services.Catalog {
	rows := []struct {
		id        uint
		name      string
		price     int64
		category  string
		sub       string
		allergens []string
	}{
		{1, "청양 통새우버거", 12900, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "토마토", "새우", "조개류(굴)"}},
		{2, "치킨버거", 8900, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "닭고기", "땅콩", "조개류(가리비)"}},
		{3, "데리버거", 9500, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "닭고기", "조개류(가리비)"}},
		{4, "감자튀김", 3500, "사이드", "", []string{"대두", "토마토"}},
		{5, "콜라", 2000, "음료", "", nil},
	}
	items := make([]entity.MenuItem, 0, len(rows))
	for _, r := range rows {
		item := entity.MenuItem{
			Model:       gorm.Model{ID: r.id},
			Name:        r.name,
			Price:       r.price,
			Category:    r.category,
			Subcategory: r.sub,
		}
		for _, a := range r.allergens {
			item.Allergens = append(item.Allergens, entity.Allergen{Name: a})
		}
		items = append(items, item)
	}
	return services.NewCatalog(items, []string{"달걀", "우유", "밀", "대두", "땅콩", "호두", "새우", "조개류(굴)", "조개류(가리비)", "토마토"})
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := testCatalog()
	registry := services.NewSessionRegistry(catalog, services.NewScheduler(), services.Timings{
		Processing: time.Minute,
		Completed:  time.Minute,
		Inactivity: time.Minute,
		StaffCall:  time.Minute,
	})

	menu := NewMenuController(catalog)
	sessions := NewSessionController(registry)
	voice := NewVoiceController(registry)

	r := gin.New()
	r.GET("/menu", menu.List)
	r.GET("/menu/:id", menu.Detail)
	r.GET("/meta", menu.Meta)
	r.POST("/sessions", sessions.Create)
	r.GET("/sessions/:id", sessions.Get)
	r.DELETE("/sessions/:id", sessions.Delete)
	r.POST("/sessions/:id/events", sessions.Event)
	r.POST("/sessions/:id/voice/transcript", voice.Transcript)
	return r
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad envelope %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/sessions", "")
	if code != http.StatusCreated || !env.OK {
		t.Fatalf("create session: %d %s", code, env.Error)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.ID == "" {
		t.Fatalf("create session data: %s", env.Data)
	}
	return out.ID
}

func TestSessionEndpointLifecycle(t *testing.T) {
	r := newTestRouter()
	id := createSession(t, r)

	steps := []string{
		`{"type":"selectOrderType","orderType":"dineIn"}`,
		`{"type":"addItem","itemId":1}`,
		`{"type":"addItem","itemId":1}`,
		`{"type":"addItem","itemId":4}`,
		`{"type":"openCart"}`,
		`{"type":"checkout"}`,
		`{"type":"selectPayment","method":"card"}`,
	}
	var env envelope
	for _, body := range steps {
		var code int
		code, env = do(t, r, http.MethodPost, "/sessions/"+id+"/events", body)
		if code != http.StatusOK {
			t.Fatalf("event %s: %d %s", body, code, env.Error)
		}
	}

	var out struct {
		View        string `json:"view"`
		TotalPrice  int64  `json:"totalPrice"`
		TotalItems  int    `json:"totalItems"`
		OrderNumber string `json:"orderNumber"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %s", env.Data)
	}
	if out.View != "processing" {
		t.Errorf("view = %q", out.View)
	}
	if out.TotalPrice != 29300 || out.TotalItems != 3 {
		t.Errorf("totals = %d / %d", out.TotalPrice, out.TotalItems)
	}
	if len(out.OrderNumber) != 4 {
		t.Errorf("orderNumber = %q", out.OrderNumber)
	}

	code, _ := do(t, r, http.MethodDelete, "/sessions/"+id, "")
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, _ = do(t, r, http.MethodGet, "/sessions/"+id, "")
	if code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", code)
	}
}

func TestSessionEventRejections(t *testing.T) {
	r := newTestRouter()
	id := createSession(t, r)

	// Illegal in the current view: 409 and the session is untouched.
	code, env := do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"type":"checkout"}`)
	if code != http.StatusConflict || env.OK {
		t.Fatalf("checkout at start: %d", code)
	}

	code, _ = do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"type":"teleport"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("unknown event type: %d", code)
	}

	code, _ = do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"nope":1}`)
	if code != http.StatusBadRequest {
		t.Fatalf("missing type field: %d", code)
	}

	code, env = do(t, r, http.MethodGet, "/sessions/"+id, "")
	if code != http.StatusOK {
		t.Fatal("session must survive rejected events")
	}
	var out struct {
		View string `json:"view"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.View != "orderType" {
		t.Fatalf("view after rejections = %s", env.Data)
	}

	// Unknown session id.
	code, _ = do(t, r, http.MethodPost, "/sessions/no-such-session/events", `{"type":"touch"}`)
	if code != http.StatusNotFound {
		t.Fatalf("unknown session: %d", code)
	}
}

func TestSessionUnknownItem(t *testing.T) {
	r := newTestRouter()
	id := createSession(t, r)

	_, _ = do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"type":"selectOrderType","orderType":"takeOut"}`)
	code, _ := do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"type":"addItem","itemId":999}`)
	if code != http.StatusNotFound {
		t.Fatalf("unknown item: %d", code)
	}
}

func TestMenuListFiltering(t *testing.T) {
	r := newTestRouter()

	code, env := do(t, r, http.MethodGet, "/menu?category=메인&subcategory=버거&allergens=새우", "")
	if code != http.StatusOK {
		t.Fatalf("menu list: %d", code)
	}
	var out struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %s", env.Data)
	}
	for _, it := range out.Items {
		if it.Name == "청양 통새우버거" {
			t.Fatal("새우 filter leaked through the query surface")
		}
	}
	if len(out.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(out.Items))
	}
}

func TestMenuDetailAndMeta(t *testing.T) {
	r := newTestRouter()

	code, _ := do(t, r, http.MethodGet, "/menu/1", "")
	if code != http.StatusOK {
		t.Fatalf("detail: %d", code)
	}
	code, _ = do(t, r, http.MethodGet, "/menu/999", "")
	if code != http.StatusNotFound {
		t.Fatalf("missing detail: %d", code)
	}
	code, _ = do(t, r, http.MethodGet, "/menu/abc", "")
	if code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: %d", code)
	}

	code, env := do(t, r, http.MethodGet, "/meta", "")
	if code != http.StatusOK {
		t.Fatalf("meta: %d", code)
	}
	var meta struct {
		PaymentMethods      []string `json:"paymentMethods"`
		SelectableAllergens []string `json:"selectableAllergens"`
	}
	if err := json.Unmarshal(env.Data, &meta); err != nil {
		t.Fatalf("meta data: %s", env.Data)
	}
	if len(meta.PaymentMethods) != 4 || len(meta.SelectableAllergens) != 10 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestVoiceTranscriptEndpoint(t *testing.T) {
	r := newTestRouter()
	id := createSession(t, r)

	_, _ = do(t, r, http.MethodPost, "/sessions/"+id+"/events", `{"type":"selectOrderType","orderType":"dineIn"}`)

	code, env := do(t, r, http.MethodPost, "/sessions/"+id+"/voice/transcript",
		`{"transcript":"계란이 들어간 음식은 안돼요"}`)
	if code != http.StatusOK {
		t.Fatalf("transcript: %d %s", code, env.Error)
	}
	var out struct {
		DetectedAllergens []string `json:"detectedAllergens"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %s", env.Data)
	}
	found := false
	for _, a := range out.DetectedAllergens {
		if a == "달걀" {
			found = true
		}
	}
	if !found {
		t.Fatalf("detected = %v, want 달걀", out.DetectedAllergens)
	}

	// Transcripts are only meaningful while browsing the menu.
	id2 := createSession(t, r)
	code, _ = do(t, r, http.MethodPost, "/sessions/"+id2+"/voice/transcript", `{"transcript":"계란"}`)
	if code != http.StatusConflict {
		t.Fatalf("transcript at orderType: %d", code)
	}
}
