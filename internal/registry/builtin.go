package registry

// Builtin returns the built-in archetype definitions. Order matters: it is
// the tie-break order for classification and the fallback when no external
// registry directory is supplied. External definitions may override entries
// by archetype name.
func Builtin() []Definition {
	return []Definition{
		{
			Archetype: "game",
			Keywords:  []string{"game", "snake", "tetris", "pygame", "arcade", "player", "score", "sprite"},
			Features: []FeatureDef{
				{
					Name:        "exit_option",
					Description: "Game exit option",
					Importance:  "high",
					Pattern:     `(def\s+exit_game|pygame\.QUIT|KEYDOWN\s+and\s+K_ESCAPE)`,
					Template: TemplateDef{
						Generic: `
# === Added: exit_game() function ===
def exit_game():
    """Cleanly exit the game."""
    print("Exiting game...")
    sys.exit()

# Call exit_game() from your input handler when the player asks to quit.
`,
						Variants: []VariantDef{
							{
								Name:   "pygame",
								Marker: `(import\s+pygame|pygame\.)`,
								Text: `
# === Added: exit_game() function ===
def exit_game():
    """Cleanly exit the game and quit pygame."""
    print("Exiting game...")
    pygame.quit()
    sys.exit()

# In the main loop, add:
# if event.type == pygame.QUIT or (event.type == pygame.KEYDOWN and event.key == pygame.K_ESCAPE):
#     exit_game()
`,
							},
						},
						Anchor: &AnchorDef{Pattern: `^\s*while\s+.+:`},
					},
				},
				{
					Name:        "pause_option",
					Description: "Pause and resume handling",
					Importance:  "medium",
					Pattern:     `(def\s+pause|\bpaused\s*=|K_p\b)`,
					Template: TemplateDef{
						Generic: `
# === Added: pause_game() function ===
def pause_game():
    """Toggle the paused state."""
    global paused
    paused = not paused

# Call pause_game() from your input handler (commonly bound to the P key).
`,
						Anchor: &AnchorDef{Pattern: `^\s*while\s+.+:`},
					},
				},
			},
		},
		{
			Archetype: "gui_app",
			Keywords:  []string{"gui", "window", "button", "interface", "tkinter", "qt", "widget"},
			Features: []FeatureDef{
				{
					Name:        "close_button",
					Description: "Close window button",
					Importance:  "high",
					Pattern:     `(Button\(.+['"](Close|Exit|Quit)['"]|root\.destroy\(\)|def\s+(close|exit|quit))`,
					Template: TemplateDef{
						Generic: `
# === Added: close handler ===
def close_window():
    """Close the application window."""
    raise SystemExit

# Wire close_window() to a Close button or the window close event.
`,
						Variants: []VariantDef{
							{
								Name:   "tkinter",
								Marker: `(import\s+tkinter|from\s+tkinter|\btk\.)`,
								Text: `
# === Added: Close Window Button ===
close_btn = tk.Button(root, text="Close", command=root.destroy)
close_btn.pack(padx=10, pady=10)
`,
							},
							{
								Name:   "qt",
								Marker: `(PyQt\d?|QtWidgets|QApplication)`,
								Text: `
# === Added: Close Window Button ===
close_btn = QtWidgets.QPushButton("Close", window)
close_btn.clicked.connect(window.close)  # acts like root.destroy()
`,
							},
						},
						Anchor: &AnchorDef{Pattern: `^.*mainloop\(\)`},
					},
				},
				{
					Name:        "window_title",
					Description: "Window title set explicitly",
					Importance:  "medium",
					Pattern:     `(\.title\(|setWindowTitle)`,
					Template: TemplateDef{
						Generic: `
# === Added: window title ===
root.title("My Application")
`,
						Variants: []VariantDef{
							{
								Name:   "qt",
								Marker: `(PyQt\d?|QtWidgets|QApplication)`,
								Text: `
# === Added: window title ===
window.setWindowTitle("My Application")
`,
							},
						},
						Anchor: &AnchorDef{Pattern: `^.*mainloop\(\)`},
					},
				},
			},
		},
		{
			Archetype: "cli_tool",
			Keywords:  []string{"command", "terminal", "shell", "console", "argument", "argparse", "flag"},
			Features: []FeatureDef{
				{
					Name:        "help_command",
					Description: "Help command via argparse",
					Importance:  "high",
					Pattern:     `(ArgumentParser|add_argument.+help=|--help)`,
					Template: TemplateDef{
						Generic: `
# === Added: Help Option ===
parser = argparse.ArgumentParser(description="Your tool description")
parser.add_argument("--verbose", action="store_true", help="Enable verbose output")
args = parser.parse_args()
`,
					},
				},
				{
					Name:        "version_flag",
					Description: "Version flag",
					Importance:  "medium",
					Pattern:     `(--version|add_argument\(.+version)`,
					Template: TemplateDef{
						Generic: `
# === Added: Version Flag ===
parser.add_argument("--version", action="version", version="%(prog)s 1.0")
`,
						// Must land after the parser exists and before the
						// arguments are consumed.
						Anchor: &AnchorDef{Pattern: `^\s*args\s*=\s*parser\.parse_args\(`},
					},
				},
			},
		},
		{
			Archetype: "web_app",
			Keywords:  []string{"web", "http", "server", "flask", "django", "request", "route", "endpoint"},
			Features: []FeatureDef{
				{
					Name:        "error_handling",
					Description: "Global error handler",
					Importance:  "high",
					Pattern:     `(@app\.errorhandler|try:|except)`,
					Template: TemplateDef{
						Generic: `
# === Added: Global Error Handler ===
def handle_error(func):
    """Run func, reporting any failure instead of crashing."""
    try:
        return func()
    except Exception as exc:
        print(f"error: {exc}")
        raise
`,
						Variants: []VariantDef{
							{
								Name:   "flask",
								Marker: `(from\s+flask|import\s+flask|Flask\()`,
								Text: `
# === Added: Global Error Handler ===
@app.errorhandler(500)
def handle_server_error(e):
    return jsonify({"error": "Internal Server Error"}), 500
`,
							},
						},
						// After the app object exists, before the server starts.
						Anchor: &AnchorDef{Pattern: `^\s*app\.run\(`},
					},
				},
				{
					Name:        "request_logging",
					Description: "Request logging",
					Importance:  "medium",
					Pattern:     `(@app\.before_request|logging\.|\blogger\b)`,
					Template: TemplateDef{
						Generic: `
# === Added: Request Logging ===
import logging

logging.basicConfig(level=logging.INFO)
# Log each incoming request at the top of your handler functions.
`,
						Variants: []VariantDef{
							{
								Name:   "flask",
								Marker: `(from\s+flask|import\s+flask|Flask\()`,
								Text: `
# === Added: Request Logging ===
import logging

logging.basicConfig(level=logging.INFO)

@app.before_request
def log_request():
    logging.info("%s %s", request.method, request.path)
`,
							},
						},
						Anchor: &AnchorDef{Pattern: `^\s*app\.run\(`},
					},
				},
				{
					Name:        "health_endpoint",
					Description: "Health check endpoint",
					Importance:  "low",
					Pattern:     `(/health|healthz|def\s+health)`,
					Template: TemplateDef{
						Generic: `
# === Added: Health Check ===
def health_check():
    """Report process liveness."""
    return "ok"
`,
						Variants: []VariantDef{
							{
								Name:   "flask",
								Marker: `(from\s+flask|import\s+flask|Flask\()`,
								Text: `
# === Added: Health Check ===
@app.route("/health")
def health_check():
    return jsonify({"status": "ok"})
`,
							},
						},
						Anchor: &AnchorDef{Pattern: `^\s*app\.run\(`},
					},
				},
			},
		},
	}
}
