package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eduportal/internal/entity"
	"eduportal/internal/feedback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeBackend struct {
	hits int32

	mu       sync.Mutex
	lastPath string
	lastBody map[string]string
	lastType string
	srv      *httptest.Server
}

func newFakeBackend(t *testing.T, status int, body string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fb.hits, 1)
		fb.mu.Lock()
		fb.lastPath = r.URL.Path
		fb.lastType = r.Header.Get("Content-Type")
		fb.lastBody = nil
		_ = json.NewDecoder(r.Body).Decode(&fb.lastBody)
		fb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) Path() string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastPath
}

func (fb *fakeBackend) ContentType() string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastType
}

func (fb *fakeBackend) Body() map[string]string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastBody
}

func (fb *fakeBackend) Hits() int {
	return int(atomic.LoadInt32(&fb.hits))
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type fixture struct {
	clock  *testingclock.FakeClock
	banner *feedback.Banner
	nav    *recordingNavigator
	view   View
}

func newFixture() *fixture {
	fc := testingclock.NewFakeClock(time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC))
	f := &fixture{
		clock:  fc,
		banner: feedback.NewBanner(fc),
		nav:    &recordingNavigator{},
	}
	f.view = View{Banner: f.banner, Navigator: f.nav, Clock: fc}
	return f
}

func (f *fixture) message(t *testing.T) entity.Message {
	t.Helper()
	msg, ok := f.banner.Current()
	require.True(t, ok, "no message shown")
	return msg
}

func TestLogin_EmptyFieldsSkipNetwork(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	h := NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

	cases := []entity.LoginForm{
		{},
		{ID: "s-1"},
		{Password: "secret"},
	}
	for _, form := range cases {
		res := h.Login(context.Background(), form)
		require.IsType(t, ValidationError{}, res)
		assert.Contains(t, res.Message(), "fill in all fields")
	}
	assert.Equal(t, 0, fb.Hits())
}

func TestRegister_TeacherRequiresSpecialization(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	backend := NewHTTPBackend(fb.srv.URL, nil, nil)

	form := entity.RegistrationForm{ID: "t-7", FullName: "Anna Petrova", Department: "Math", Password: "pw"}

	res := NewHandler(entity.RoleTeacher, backend, nil).Register(context.Background(), form)
	require.IsType(t, ValidationError{}, res)
	assert.Equal(t, MsgFillAllFields, res.Message())
	assert.Equal(t, 0, fb.Hits())

	// студенту специализация не нужна
	res = NewHandler(entity.RoleStudent, backend, nil).Register(context.Background(), form)
	require.IsType(t, Success{}, res)
	assert.Equal(t, 1, fb.Hits())
	assert.NotContains(t, fb.Body(), "specialization")
}

func TestLogin_TeacherSuccessNavigatesToDashboard(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"role":"teacher"}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleTeacher, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, true, false)

	res, timer := page.SubmitLogin(context.Background(), entity.LoginForm{ID: "t-7", Password: "pw"})
	require.IsType(t, Success{}, res)
	require.NotNil(t, timer)

	assert.Equal(t, "/teacher/login", fb.Path())
	assert.Equal(t, "application/json", fb.ContentType())
	assert.Equal(t, map[string]string{"teacherId": "t-7", "password": "pw"}, fb.Body())

	msg := f.message(t)
	assert.Equal(t, MsgLoginSuccess, msg.Text)
	assert.Equal(t, entity.SeveritySuccess, msg.Severity)
	assert.Empty(t, f.nav.Paths())

	f.clock.Step(LoginRedirectDelay)
	assert.Equal(t, []string{"/teacher/dashboard"}, f.nav.Paths())
}

func TestLogin_ServerErrorUsesFallback(t *testing.T) {
	fb := newFakeBackend(t, http.StatusUnauthorized, `{}`)
	h := NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

	res := h.Login(context.Background(), entity.LoginForm{ID: "s-1", Password: "bad"})
	require.IsType(t, ServerError{}, res)
	assert.Equal(t, MsgLoginFailed, res.Message())
	assert.Equal(t, http.StatusUnauthorized, res.(ServerError).Status)
}

func TestRegister_ServerMessageShownVerbatim(t *testing.T) {
	fb := newFakeBackend(t, http.StatusConflict, `{"message":"Student ID already exists"}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, false, true)

	res, timer := page.SubmitRegister(context.Background(), entity.RegistrationForm{
		ID: "s-1", FullName: "Ivan Sidorov", Department: "Physics", Password: "pw",
	})
	require.IsType(t, ServerError{}, res)
	assert.Nil(t, timer)

	msg := f.message(t)
	assert.Equal(t, "Student ID already exists", msg.Text)
	assert.Equal(t, entity.SeverityError, msg.Severity)
	assert.Equal(t, map[string]string{
		"studentId":  "s-1",
		"fullName":   "Ivan Sidorov",
		"department": "Physics",
		"password":   "pw",
	}, fb.Body())
}

func TestRegister_ServerErrorWithoutMessage(t *testing.T) {
	fb := newFakeBackend(t, http.StatusInternalServerError, `{"error":"boom"}`)
	h := NewHandler(entity.RoleTeacher, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

	res := h.Register(context.Background(), entity.RegistrationForm{
		ID: "t-1", FullName: "A", Department: "B", Specialization: "C", Password: "D",
	})
	require.IsType(t, ServerError{}, res)
	assert.Equal(t, MsgRegisterFailed, res.Message())
	assert.Equal(t, "C", fb.Body()["specialization"])
}

func TestRegister_TransportErrorHidesCause(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h := NewHandler(entity.RoleStudent, NewHTTPBackend(url, nil, nil), nil)
	res := h.Register(context.Background(), entity.RegistrationForm{
		ID: "s-1", FullName: "A", Department: "B", Password: "C",
	})

	require.IsType(t, TransportError{}, res)
	assert.Equal(t, MsgRegisterError, res.Message())
	assert.Error(t, res.(TransportError).Err)
}

func TestLogin_MalformedJSONIsTransportError(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `<html>oops</html>`)
	h := NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

	res := h.Login(context.Background(), entity.LoginForm{ID: "s-1", Password: "pw"})
	require.IsType(t, TransportError{}, res)
	assert.Equal(t, MsgLoginError, res.Message())
}

func TestRegister_SuccessTimersAreIndependent(t *testing.T) {
	fb := newFakeBackend(t, http.StatusCreated, `{"message":"created"}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleTeacher, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, false, true)

	res, _ := page.SubmitRegister(context.Background(), entity.RegistrationForm{
		ID: "t-1", FullName: "A", Department: "B", Specialization: "C", Password: "D",
	})
	require.IsType(t, Success{}, res)
	assert.Equal(t, MsgRegisterSuccess, f.message(t).Text)

	f.clock.Step(RegisterRedirectDelay)
	assert.Equal(t, []string{"/teacher/login"}, f.nav.Paths())
	_, shown := f.banner.Current()
	assert.True(t, shown, "banner outlives the redirect timer")

	f.clock.Step(feedback.DismissAfter - RegisterRedirectDelay)
	_, shown = f.banner.Current()
	assert.False(t, shown)
}

func TestPage_MissingFormIsNoop(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, false, false)

	res, timer := page.SubmitLogin(context.Background(), entity.LoginForm{ID: "s-1", Password: "pw"})
	assert.Nil(t, res)
	assert.Nil(t, timer)

	res, timer = page.SubmitRegister(context.Background(), entity.RegistrationForm{})
	assert.Nil(t, res)
	assert.Nil(t, timer)

	assert.Equal(t, 0, fb.Hits())
	assert.Empty(t, f.banner.Messages())
}

func TestPage_NavigationCanBeCancelled(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, true, false)

	_, timer := page.SubmitLogin(context.Background(), entity.LoginForm{ID: "s-1", Password: "pw"})
	require.NotNil(t, timer)
	timer.Stop()

	f.clock.Step(time.Minute)
	assert.Empty(t, f.nav.Paths())
}

func TestPage_AtMostOneMessage(t *testing.T) {
	fb := newFakeBackend(t, http.StatusBadRequest, `{"message":"nope"}`)
	f := newFixture()
	page := NewPage(NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil), f.view, true, true)

	page.SubmitLogin(context.Background(), entity.LoginForm{})
	page.SubmitLogin(context.Background(), entity.LoginForm{ID: "s-1", Password: "pw"})
	page.SubmitRegister(context.Background(), entity.RegistrationForm{ID: "s-1"})

	msgs := f.banner.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MsgFillAllFields, msgs[0].Text)
}

func TestBackend_CookiesCollected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	sink := &CookieSink{}
	ctx := WithCookieSink(context.Background(), sink)
	h := NewHandler(entity.RoleStudent, NewHTTPBackend(srv.URL, nil, nil), nil)

	res := h.Login(ctx, entity.LoginForm{ID: "s-1", Password: "pw"})
	require.IsType(t, Success{}, res)

	cookies := sink.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestLogin_NonObjectBodies(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   Result
	}{
		{"ok true", http.StatusOK, `true`, Success{}},
		{"ok string", http.StatusOK, `"ok"`, Success{}},
		{"ok array", http.StatusOK, `[]`, Success{}},
		{"ok null", http.StatusOK, `null`, Success{}},
		{"rejected string", http.StatusUnauthorized, `"denied"`, ServerError{}},
		{"rejected array", http.StatusUnauthorized, `["denied"]`, ServerError{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := newFakeBackend(t, tc.status, tc.body)
			h := NewHandler(entity.RoleTeacher, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

			res := h.Login(context.Background(), entity.LoginForm{ID: "t-1", Password: "pw"})
			require.IsType(t, tc.want, res)
			if _, ok := tc.want.(Success); ok {
				assert.Equal(t, MsgLoginSuccess, res.Message())
			} else {
				assert.Equal(t, MsgLoginFailed, res.Message())
			}
		})
	}
}

func TestReply_Message(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"X"}`, "X"},
		{`{"message":42}`, "42"},
		{`{"message":1.5}`, "1.5"},
		{`{"message":true}`, "true"},
		{`{"message":0}`, ""},
		{`{"message":false}`, ""},
		{`{"message":""}`, ""},
		{`{"message":null}`, ""},
		{`{"message":{"text":"X"}}`, ""},
		{`{}`, ""},
		{`"X"`, ""},
		{`[{"message":"X"}]`, ""},
		{`null`, ""},
	}

	for _, tc := range cases {
		var reply Reply
		require.NoError(t, json.Unmarshal([]byte(tc.body), &reply.Body), tc.body)
		assert.Equal(t, tc.want, reply.Message(), tc.body)
	}
}

func TestRegister_NumericServerMessage(t *testing.T) {
	fb := newFakeBackend(t, http.StatusBadRequest, `{"message":42}`)
	h := NewHandler(entity.RoleStudent, NewHTTPBackend(fb.srv.URL, nil, nil), nil)

	res := h.Register(context.Background(), entity.RegistrationForm{
		ID: "s-1", FullName: "A", Department: "B", Password: "C",
	})
	require.IsType(t, ServerError{}, res)
	assert.Equal(t, "42", res.Message())
}
