package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phonebook-server/config"
	"phonebook-server/storage/memstore"
	apierrors "phonebook-server/utils/errors"
)

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Port:          "0",
		JWTSecret:     "test-secret",
		LoginPassword: "secret",
		CORSOrigins:   []string{"*"},
	}
	router, err := buildRouter(cfg, memstore.NewPersonStore(), memstore.NewUserStore())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postGraphQL(t *testing.T, baseURL, token, query string) (*http.Response, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatalf("marshal query: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func (r gqlResponse) errorCode() string {
	if len(r.Errors) == 0 {
		return ""
	}
	if code, ok := r.Errors[0].Extensions["code"].(string); ok {
		return code
	}
	if i := strings.Index(r.Errors[0].Message, ":"); i > 0 {
		return r.Errors[0].Message[:i]
	}
	return r.Errors[0].Message
}

func TestUserJourney(t *testing.T) {
	ts := newTestServer(t)

	_, created := postGraphQL(t, ts.URL, "",
		`mutation { createUser(username: "bob") { username id friends { name } } }`)
	if len(created.Errors) > 0 {
		t.Fatalf("createUser errors: %v", created.Errors)
	}

	_, login := postGraphQL(t, ts.URL, "",
		`mutation { login(username: "bob", password: "secret") { value } }`)
	if len(login.Errors) > 0 {
		t.Fatalf("login errors: %v", login.Errors)
	}
	token, _ := login.Data["login"].(map[string]any)["value"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}

	_, added := postGraphQL(t, ts.URL, token,
		`mutation { addPerson(name: "Carol", street: "X", city: "Y") { name phone address { street city } } }`)
	if len(added.Errors) > 0 {
		t.Fatalf("addPerson errors: %v", added.Errors)
	}
	carol, _ := added.Data["addPerson"].(map[string]any)
	if carol["name"] != "Carol" || carol["phone"] != nil {
		t.Fatalf("addPerson = %v, want Carol with null phone", carol)
	}

	_, found := postGraphQL(t, ts.URL, "",
		`{ findPerson(name: "Carol") { name address { street city } } }`)
	person, _ := found.Data["findPerson"].(map[string]any)
	if person == nil || person["name"] != "Carol" {
		t.Fatalf("findPerson = %v, want Carol", person)
	}

	_, me := postGraphQL(t, ts.URL, token, `{ me { username friends { name } } }`)
	user, _ := me.Data["me"].(map[string]any)
	if user == nil || user["username"] != "bob" {
		t.Fatalf("me = %v, want bob", user)
	}
	friends, _ := user["friends"].([]any)
	if len(friends) != 1 || friends[0].(map[string]any)["name"] != "Carol" {
		t.Fatalf("friends = %v, want [Carol]", friends)
	}
}

func TestInvalidTokenFailsTheRequest(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postGraphQL(t, ts.URL, "garbage", `{ personCount }`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body.Data != nil {
		t.Errorf("data = %v, want none (operation must not execute)", body.Data)
	}
}

func TestWrongPasswordLogin(t *testing.T) {
	ts := newTestServer(t)

	postGraphQL(t, ts.URL, "", `mutation { createUser(username: "alice") { username } }`)
	_, login := postGraphQL(t, ts.URL, "",
		`mutation { login(username: "alice", password: "wrong") { value } }`)
	if code := login.errorCode(); code != apierrors.CodeValidation {
		t.Fatalf("error code = %q, want %q", code, apierrors.CodeValidation)
	}
}

func TestMutationsWithoutAuth(t *testing.T) {
	ts := newTestServer(t)

	_, resp := postGraphQL(t, ts.URL, "",
		`mutation { addPerson(name: "Carol", street: "X", city: "Y") { name } }`)
	if code := resp.errorCode(); code != apierrors.CodeAuthentication {
		t.Fatalf("addPerson error code = %q, want %q", code, apierrors.CodeAuthentication)
	}

	_, missing := postGraphQL(t, ts.URL, "",
		`mutation { editNumber(name: "Nobody", phone: "123") { name } }`)
	if code := missing.errorCode(); code != apierrors.CodeNotFound {
		t.Fatalf("editNumber error code = %q, want %q", code, apierrors.CodeNotFound)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}
