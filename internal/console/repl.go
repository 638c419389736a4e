package console

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Goto(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Languages(ctx context.Context) error
	Type(ctx context.Context, args []string) error
	Speak(ctx context.Context, args []string) error
	Translate(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Users(ctx context.Context) error
	Lang(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit". Handler errors are already shown to the user by the handlers, so
// the loop ignores them.
//
// Commands
//
//	Signup / Login pages:
//	  - signup                     create an account
//	  - login                      authenticate
//	  - goto login|signup          switch between the two pages
//
//	Home page:
//	  - type [text]                set the text to translate
//	  - speak <file> [source]      recognize speech from an audio file
//	  - translate <src> <dst> [out.mp3]
//	                               translate, optionally saving the audio
//	  - logout
//
//	Always:
//	  - languages, status, users, lang add|rm <code> <name>, help, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("polyglot %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: type, speak, translate, (l)anguages, status, logout, users, lang, exit")
			} else {
				printlnFn("Available commands: signup, login, goto, (l)anguages, status, users, lang, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "goto":
			_ = a.Goto(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "languages":
			_ = a.Languages(ctx)

		case "type":
			_ = a.Type(ctx, args)

		case "speak":
			_ = a.Speak(ctx, args)

		case "translate":
			_ = a.Translate(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "users":
			_ = a.Users(ctx)

		case "lang":
			_ = a.Lang(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
