package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"petclinic/internal/router"
)

func newServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	h, err := router.NewRouter(router.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return ts, &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func TestHTTP_EndToEnd_OwnerPetVisit(t *testing.T) {
	ts, c := newServer(t)

	// 1) Alta de owner => redirect al detalle con flash
	st, body, final := postForm(t, c, ts.URL+"/owners/new", url.Values{
		"firstName": {"Joe"},
		"lastName":  {"Bloggs"},
		"address":   {"123 Caramel Street"},
		"city":      {"London"},
		"telephone": {"1316761638"},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 after create owner, got %d body=%s", st, body)
	}
	if !strings.HasPrefix(final, "/owners/") {
		t.Fatalf("expected redirect to owner details, landed on %s", final)
	}
	mustContain(t, body, "New Owner Created")
	mustContain(t, body, "Joe Bloggs")
	ownerPath := final

	// 2) El flash se muestra una sola vez
	{
		st, body := get(t, c, ts.URL+ownerPath)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reloading owner, got %d", st)
		}
		mustNotContain(t, body, "New Owner Created")
	}

	// 3) Alta de pet
	st, body, final = postForm(t, c, ts.URL+ownerPath+"/pets/new", url.Values{
		"name":      {"Betty"},
		"birthDate": {"2015-02-12"},
		"type":      {"hamster"},
	})
	if st != http.StatusOK || final != ownerPath {
		t.Fatalf("expected redirect to %s after add pet, got %d at %s body=%s", ownerPath, st, final, body)
	}
	mustContain(t, body, "New Pet has been Added")
	mustContain(t, body, "Betty")
	mustContain(t, body, "hamster")

	// 4) El mismo nombre otra vez => duplicate, se queda en el form
	{
		st, body, final := postForm(t, c, ts.URL+ownerPath+"/pets/new", url.Values{
			"name":      {"Betty"},
			"birthDate": {"2015-02-12"},
			"type":      {"hamster"},
		})
		if st != http.StatusOK || final != ownerPath+"/pets/new" {
			t.Fatalf("expected form re-render for duplicate pet, got %d at %s", st, final)
		}
		mustContain(t, body, "is already in use")
	}

	// 5) Visita para el pet recién creado
	petPath := findLink(t, body, ownerPath+"/pets/", "/visits/new")
	st, body, final = postForm(t, c, ts.URL+petPath, url.Values{
		"date":        {"2024-03-01"},
		"description": {"annual checkup"},
	})
	if st != http.StatusOK || final != ownerPath {
		t.Fatalf("expected redirect to %s after booking visit, got %d at %s body=%s", ownerPath, st, final, body)
	}
	mustContain(t, body, "Your visit has been booked")
	mustContain(t, body, "annual checkup")
	mustContain(t, body, "2024-03-01")
}

func TestHTTP_OwnerSearch(t *testing.T) {
	ts, c := newServer(t)

	// varios resultados => listado
	st, body := get(t, c, ts.URL+"/owners?lastName=Davis")
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing owners, got %d", st)
	}
	mustContain(t, body, "Betty Davis")
	mustContain(t, body, "Harold Davis")

	// uno => redirect directo al detalle
	st, body, final := getFinal(t, c, ts.URL+"/owners?lastName=Franklin")
	if st != http.StatusOK || final != "/owners/1" {
		t.Fatalf("expected redirect to /owners/1, got %d at %s", st, final)
	}
	mustContain(t, body, "110 W. Liberty St.")

	// ninguno => form de búsqueda con error
	st, body = get(t, c, ts.URL+"/owners?lastName=Nobody")
	if st != http.StatusOK {
		t.Fatalf("expected 200 for empty search, got %d", st)
	}
	mustContain(t, body, "has not been found")
}

func TestHTTP_FlashSurvivesRedirectOnlyRequest(t *testing.T) {
	ts, c := newServer(t)
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	res, err := c.PostForm(ts.URL+"/owners/new", url.Values{
		"firstName": {"Joe"},
		"lastName":  {"Bloggs"},
		"address":   {"123 Caramel Street"},
		"city":      {"London"},
		"telephone": {"1316761638"},
	})
	if err != nil {
		t.Fatalf("POST /owners/new: %v", err)
	}
	res.Body.Close()
	ownerPath := res.Header.Get("Location")
	if res.StatusCode != http.StatusFound || !strings.HasPrefix(ownerPath, "/owners/") {
		t.Fatalf("expected redirect to owner details, got %d to %q", res.StatusCode, ownerPath)
	}

	// un único resultado: la búsqueda redirige sin dibujar nada
	res, err = c.Get(ts.URL + "/owners?lastName=Bloggs")
	if err != nil {
		t.Fatalf("GET search: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusFound || res.Header.Get("Location") != ownerPath {
		t.Fatalf("expected search to redirect to %s, got %d to %q", ownerPath, res.StatusCode, res.Header.Get("Location"))
	}

	st, body := get(t, c, ts.URL+ownerPath)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on owner details, got %d", st)
	}
	mustContain(t, body, "New Owner Created")

	_, body = get(t, c, ts.URL+ownerPath)
	mustNotContain(t, body, "New Owner Created")
}

func TestHTTP_OwnerIDMismatch(t *testing.T) {
	ts, c := newServer(t)

	st, body, final := postForm(t, c, ts.URL+"/owners/1/edit", url.Values{
		"id":        {"2"},
		"firstName": {"George"},
		"lastName":  {"Franklin"},
		"address":   {"110 W. Liberty St."},
		"city":      {"Madison"},
		"telephone": {"6085551023"},
	})
	if st != http.StatusOK || final != "/owners/1/edit" {
		t.Fatalf("expected redirect back to edit form, got %d at %s", st, final)
	}
	mustContain(t, body, "Owner ID mismatch. Please try again.")
}

func TestHTTP_NotFoundAndErrors(t *testing.T) {
	ts, c := newServer(t)

	if st, _ := get(t, c, ts.URL+"/owners/999"); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown owner, got %d", st)
	}
	if st, _ := get(t, c, ts.URL+"/owners/1/pets/999/edit"); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pet, got %d", st)
	}
	if st, _ := get(t, c, ts.URL+"/owners/abc"); st != http.StatusNotFound {
		t.Fatalf("expected 404 for non-numeric owner id, got %d", st)
	}

	st, body := get(t, c, ts.URL+"/oups")
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 from /oups, got %d", st)
	}
	mustContain(t, body, "Something happened...")
}

func TestHTTP_VetsAndOps(t *testing.T) {
	ts, c := newServer(t)

	st, body := get(t, c, ts.URL+"/vets")
	if st != http.StatusOK {
		t.Fatalf("expected 200 /vets, got %d", st)
	}
	var out struct {
		VetList []struct {
			FirstName   string `json:"firstName"`
			Specialties []struct {
				Name string `json:"name"`
			} `json:"specialties"`
		} `json:"vetList"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode /vets: %v body=%s", err, body)
	}
	if len(out.VetList) != 6 {
		t.Fatalf("expected 6 vets, got %d", len(out.VetList))
	}
	for _, v := range out.VetList {
		for i := 1; i < len(v.Specialties); i++ {
			if v.Specialties[i-1].Name > v.Specialties[i].Name {
				t.Fatalf("specialties of %s not sorted by name: %+v", v.FirstName, v.Specialties)
			}
		}
	}

	st, body = get(t, c, ts.URL+"/vets.html?page=2")
	if st != http.StatusOK {
		t.Fatalf("expected 200 /vets.html, got %d", st)
	}
	mustContain(t, body, "Sharon Jenkins")

	if st, body := get(t, c, ts.URL+"/health"); st != http.StatusOK || body != "ok" {
		t.Fatalf("expected 200 ok from /health, got %d %q", st, body)
	}
	if st, body := get(t, c, ts.URL+"/metrics"); st != http.StatusOK || !strings.Contains(body, "petclinic_http_requests_total") {
		t.Fatalf("expected request counter in /metrics, got %d", st)
	}
}

// helpers

func get(t *testing.T, c *http.Client, u string) (int, string) {
	t.Helper()
	st, body, _ := getFinal(t, c, u)
	return st, body
}

func getFinal(t *testing.T, c *http.Client, u string) (int, string, string) {
	t.Helper()
	res, err := c.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	return readResponse(t, res)
}

func postForm(t *testing.T, c *http.Client, u string, form url.Values) (int, string, string) {
	t.Helper()
	res, err := c.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	return readResponse(t, res)
}

// readResponse devuelve status, body y el path final (después de seguir redirects).
func readResponse(t *testing.T, res *http.Response) (int, string, string) {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, string(b), res.Request.URL.Path
}

func findLink(t *testing.T, body, prefix, suffix string) string {
	t.Helper()
	for _, part := range strings.Split(body, `href="`) {
		end := strings.Index(part, `"`)
		if end < 0 {
			continue
		}
		href := part[:end]
		if strings.HasPrefix(href, prefix) && strings.HasSuffix(href, suffix) {
			return href
		}
	}
	t.Fatalf("no link %s...%s in body", prefix, suffix)
	return ""
}

func mustContain(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("expected body to contain %q, body=%s", want, body)
	}
}

func mustNotContain(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Fatalf("expected body not to contain %q", unwanted)
	}
}
