package console

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/server/session"
	"github.com/dmitrijs2005/polyglot/internal/speech"
)

// fakeSessions records what the console asked for and answers with next/err.
type fakeSessions struct {
	next session.Session
	err  error

	starts    int
	signup    services.SignupForm
	login     [2]string
	text      string
	speakSrc  string
	speakFile string
	audio     string
	source    string
	target    string
	calls     []string
}

func (f *fakeSessions) answer(name string) (session.Session, error) {
	f.calls = append(f.calls, name)
	return f.next, f.err
}

func (f *fakeSessions) Start(ctx context.Context) session.Session {
	f.starts++
	return session.Session{ID: "sid", Page: session.PageSignup}
}

func (f *fakeSessions) Get(ctx context.Context, id string) (session.Session, error) {
	return f.answer("get")
}

func (f *fakeSessions) SubmitSignup(ctx context.Context, id string, form services.SignupForm) (session.Session, error) {
	f.signup = form
	return f.answer("signup")
}

func (f *fakeSessions) SubmitLogin(ctx context.Context, id, username, password string) (session.Session, error) {
	f.login = [2]string{username, password}
	return f.answer("login")
}

func (f *fakeSessions) ShowLogin(ctx context.Context, id string) (session.Session, error) {
	return f.answer("show-login")
}

func (f *fakeSessions) ShowSignup(ctx context.Context, id string) (session.Session, error) {
	return f.answer("show-signup")
}

func (f *fakeSessions) Logout(ctx context.Context, id string) (session.Session, error) {
	return f.answer("logout")
}

func (f *fakeSessions) SetText(ctx context.Context, id, text string) (session.Session, error) {
	f.text = text
	return f.answer("text")
}

func (f *fakeSessions) Speak(ctx context.Context, id, source string, u speech.Utterance) (session.Session, error) {
	b, _ := io.ReadAll(u.Audio)
	f.speakSrc, f.speakFile, f.audio = source, u.Filename, string(b)
	return f.answer("speak")
}

func (f *fakeSessions) Translate(ctx context.Context, id, source, target string) (session.Session, error) {
	f.source, f.target = source, target
	return f.answer("translate")
}

func (f *fakeSessions) Languages(ctx context.Context) ([]models.Language, error) {
	return []models.Language{{ID: 1, Name: "English", Code: "en"}, {ID: 2, Name: "Hindi (हिन्दी)", Code: "hi"}}, nil
}

type fakeUsers struct {
	rows map[string]models.User
	err  error
}

func (f *fakeUsers) FindAll(ctx context.Context) (map[string]models.User, error) {
	return f.rows, f.err
}

type fakeLangs struct {
	added, removed [2]string
	err            error
}

func (f *fakeLangs) Add(ctx context.Context, name, code string) error {
	f.added = [2]string{name, code}
	return f.err
}

func (f *fakeLangs) Remove(ctx context.Context, name, code string) error {
	f.removed = [2]string{name, code}
	return f.err
}

func newTestApp(t *testing.T, input string) (*App, *fakeSessions, *strings.Builder) {
	t.Helper()
	fs := &fakeSessions{}
	out := &strings.Builder{}
	a := NewApp(fs, &fakeUsers{}, &fakeLangs{}, strings.NewReader(input), out)
	a.current = fs.Start(context.Background())
	fs.starts = 0
	return a, fs, out
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func home(user string) session.Session {
	return session.Session{ID: "sid", Page: session.PageHome, Username: user}
}
