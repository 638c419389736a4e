package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/server/session"
	"github.com/dmitrijs2005/polyglot/internal/speech"
)

// Sessions is the subset of session.Controller the console drives.
type Sessions interface {
	Start(ctx context.Context) session.Session
	Get(ctx context.Context, id string) (session.Session, error)
	SubmitSignup(ctx context.Context, id string, f services.SignupForm) (session.Session, error)
	SubmitLogin(ctx context.Context, id, username, password string) (session.Session, error)
	ShowLogin(ctx context.Context, id string) (session.Session, error)
	ShowSignup(ctx context.Context, id string) (session.Session, error)
	Logout(ctx context.Context, id string) (session.Session, error)
	SetText(ctx context.Context, id, text string) (session.Session, error)
	Speak(ctx context.Context, id, source string, u speech.Utterance) (session.Session, error)
	Translate(ctx context.Context, id, source, target string) (session.Session, error)
	Languages(ctx context.Context) ([]models.Language, error)
}

// UserLister lists registered users keyed by username.
type UserLister interface {
	FindAll(ctx context.Context) (map[string]models.User, error)
}

// LanguageAdmin edits the language catalog.
type LanguageAdmin interface {
	Add(ctx context.Context, name, code string) error
	Remove(ctx context.Context, name, code string) error
}

// autoSource selects language detection in the translate command.
const autoSource = "auto"

// Test seams.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	openFile      = func(name string) (io.ReadCloser, error) { return os.Open(name) }
	writeFile     = os.WriteFile
)

// App is the console state: the session it drives and its terminal I/O.
type App struct {
	sessions Sessions
	users    UserLister
	langs    LanguageAdmin
	current  session.Session
	scanner  *bufio.Scanner
	out      io.Writer
}

// NewApp constructs a console reading commands from in and writing to out.
func NewApp(s Sessions, users UserLister, langs LanguageAdmin, in io.Reader, out io.Writer) *App {
	return &App{
		sessions: s,
		users:    users,
		langs:    langs,
		scanner:  bufio.NewScanner(in),
		out:      out,
	}
}

// Run starts a fresh session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.current = a.sessions.Start(ctx)
	printlnFn("Polyglot console (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.scanner)
}

func (a *App) isLoggedIn() bool {
	return a.current.Page == session.PageHome
}

func (a *App) status() string {
	if a.current.Username != "" {
		return fmt.Sprintf("%s (%s)", a.current.Page, a.current.Username)
	}
	return a.current.Page.String()
}

// show records the session returned by an action and prints its feedback.
// An expired session is replaced by a new one on the signup page.
func (a *App) show(ctx context.Context, s session.Session, err error) error {
	if errors.Is(err, common.ErrSessionNotFound) {
		fmt.Fprintln(a.out, session.Message(err))
		a.current = a.sessions.Start(ctx)
		return err
	}
	if errors.Is(err, common.ErrInvalidTransition) {
		fmt.Fprintln(a.out, session.Message(err))
		return err
	}

	a.current = s
	for _, m := range s.Errors {
		fmt.Fprintln(a.out, "! "+m)
	}
	if s.Notice != "" {
		fmt.Fprintln(a.out, s.Notice)
	}
	return err
}

func (a *App) Signup(ctx context.Context) error {
	var f services.SignupForm
	var err error

	for _, field := range []struct {
		prompt string
		dst    *string
	}{
		{"-Enter name", &f.Name},
		{"-Enter email", &f.Email},
		{"-Enter username", &f.Username},
	} {
		if *field.dst, err = getSimpleText(a.scanner, field.prompt, a.out); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(confirm)

	f.Password, f.ConfirmPassword = string(password), string(confirm)

	s, err := a.sessions.SubmitSignup(ctx, a.current.ID, f)
	return a.show(ctx, s, err)
}

func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.scanner, "-Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.sessions.SubmitLogin(ctx, a.current.ID, username, string(password))
	return a.show(ctx, s, err)
}

func (a *App) Goto(ctx context.Context, args []string) error {
	var page session.Page
	var err error
	if len(args) == 1 {
		page, err = session.ParsePage(args[0])
	}
	if len(args) != 1 || err != nil || page == session.PageHome {
		fmt.Fprintln(a.out, "Usage: goto login|signup")
		return errors.New("usage")
	}

	var s session.Session
	if page == session.PageLogin {
		s, err = a.sessions.ShowLogin(ctx, a.current.ID)
	} else {
		s, err = a.sessions.ShowSignup(ctx, a.current.ID)
	}
	return a.show(ctx, s, err)
}

func (a *App) Logout(ctx context.Context) error {
	s, err := a.sessions.Logout(ctx, a.current.ID)
	if err == nil {
		fmt.Fprintln(a.out, "Logged out")
	}
	return a.show(ctx, s, err)
}

func (a *App) Languages(ctx context.Context) error {
	langs, err := a.sessions.Languages(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	for _, l := range langs {
		fmt.Fprintf(a.out, "%-6s %s\n", l.Code, l.Name)
	}
	return nil
}

// Type sets the pending input. Without arguments the text is prompted for.
func (a *App) Type(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.scanner, "-Enter text", a.out); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
	}

	s, err := a.sessions.SetText(ctx, a.current.ID, text)
	return a.show(ctx, s, err)
}

// Speak recognizes the recording in args[0]. The optional args[1] names the
// spoken language by catalog code or name.
func (a *App) Speak(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: speak <file> [source]")
		return errors.New("usage")
	}

	var source string
	if len(args) == 2 {
		source = a.resolveLanguage(ctx, args[1])
	}

	f, err := openFile(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer f.Close()

	s, err := a.sessions.Speak(ctx, a.current.ID, source, speech.Utterance{
		Audio:    f,
		Filename: filepath.Base(args[0]),
	})
	if err == nil {
		fmt.Fprintf(a.out, "You said: %s\n", s.Input.Text)
		if s.DetectedLanguage != "" {
			fmt.Fprintf(a.out, "Detected language: %s\n", s.DetectedLanguage)
		}
	} else if s.Input.RecognitionErr != nil {
		fmt.Fprintln(a.out, session.Message(s.Input.RecognitionErr))
	}
	return a.show(ctx, s, err)
}

// Translate translates the pending input. Languages are given by catalog code
// or name; "auto" as source detects the language. A third argument names a
// file the synthesized mp3 is written to.
func (a *App) Translate(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(a.out, "Usage: translate <source|auto> <target> [out.mp3]")
		return errors.New("usage")
	}

	var source string
	if !strings.EqualFold(args[0], autoSource) {
		source = a.resolveLanguage(ctx, args[0])
	}
	target := a.resolveLanguage(ctx, args[1])

	s, err := a.sessions.Translate(ctx, a.current.ID, source, target)
	if err := a.show(ctx, s, err); err != nil {
		return err
	}

	res := s.LastResult
	fmt.Fprintf(a.out, "Translation: %s\n", res.TranslatedText)
	if res.DetectedLanguage != "" {
		fmt.Fprintf(a.out, "Detected language: %s\n", res.DetectedLanguage)
	}
	if res.AudioURL != "" {
		fmt.Fprintf(a.out, "Audio: %s\n", res.AudioURL)
	}

	if len(args) == 3 {
		if err := writeFile(args[2], res.Audio.Data, 0o644); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "Audio saved to %s\n", args[2])
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	s, err := a.sessions.Get(ctx, a.current.ID)
	if err != nil {
		return a.show(ctx, s, err)
	}
	a.current = s

	fmt.Fprintf(a.out, "Page: %s\n", s.Page)
	if s.Username != "" {
		fmt.Fprintf(a.out, "User: %s\n", s.Username)
	}
	if s.Input.Text != "" {
		fmt.Fprintf(a.out, "Input (%s): %s\n", s.Input.Method, s.Input.Text)
	}
	if s.DetectedLanguage != "" {
		fmt.Fprintf(a.out, "Detected language: %s\n", s.DetectedLanguage)
	}
	if r := s.LastResult; r != nil {
		fmt.Fprintf(a.out, "Last translation (%s): %s\n", r.TargetLanguage, r.TranslatedText)
	}
	return nil
}

// Users lists registered usernames.
func (a *App) Users(ctx context.Context) error {
	users, err := a.users.FindAll(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(a.out, "%s\t%s\n", name, users[name].CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(a.out, "%d user(s)\n", len(names))
	return nil
}

// Lang adds or removes a catalog language: lang add|rm <code> <name...>.
func (a *App) Lang(ctx context.Context, args []string) error {
	if len(args) < 3 || (args[0] != "add" && args[0] != "rm") {
		fmt.Fprintln(a.out, "Usage: lang add|rm <code> <name>")
		return errors.New("usage")
	}
	code, name := args[1], strings.Join(args[2:], " ")

	var err error
	if args[0] == "add" {
		err = a.langs.Add(ctx, name, code)
	} else {
		err = a.langs.Remove(ctx, name, code)
	}

	switch {
	case errors.Is(err, common.ErrUnknownLanguage):
		fmt.Fprintf(a.out, "No language %q with code %s\n", name, code)
	case err != nil:
		fmt.Fprintf(a.out, "error: %v\n", err)
	case args[0] == "add":
		fmt.Fprintf(a.out, "Added %s (%s)\n", name, code)
	default:
		fmt.Fprintf(a.out, "Removed %s (%s)\n", name, code)
	}
	return err
}

// resolveLanguage maps a code or name typed at the prompt to the catalog name
// the controller expects. Unknown tokens are passed through unchanged.
func (a *App) resolveLanguage(ctx context.Context, token string) string {
	langs, err := a.sessions.Languages(ctx)
	if err != nil {
		return token
	}
	for _, l := range langs {
		if strings.EqualFold(l.Code, token) || strings.EqualFold(l.Name, token) {
			return l.Name
		}
	}
	return token
}
