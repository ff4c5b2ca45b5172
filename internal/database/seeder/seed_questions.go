package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skill-verify/internal/database"
)

// QuestionsSeeder plants a starter question bank for the Go skill so a
// fresh environment can run an assessment end to end. Production banks
// come from the authoring pipeline; this exists for local development.
type QuestionsSeeder struct{}

func (QuestionsSeeder) Name() string { return "questions" }

type seedQuestion struct {
	Text       string
	Options    []string
	Correct    string
	Difficulty string
	Points     int
}

func (QuestionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "question_bank",
		"id", "skill_id", "text", "options", "correct_text", "difficulty", "points"); err != nil {
		return err
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = 'Go' LIMIT 1`)
	var skillID string
	if err := row.Scan(&skillID); err != nil {
		// No taxonomy yet; skills seeder runs first, so this is a hard error.
		return fmt.Errorf("go skill missing: %w", err)
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM question_bank WHERE skill_id = $1`, skillID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	questions := goStarterQuestions()

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, q := range questions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO question_bank (id, skill_id, text, options, correct_text, difficulty, points)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)`,
			skillID, q.Text, opts, q.Correct, q.Difficulty, q.Points)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func goStarterQuestions() []seedQuestion {
	easy := []seedQuestion{
		{Text: "Which keyword declares a new variable with inferred type?", Options: []string{":=", "var only", "let", "def"}, Correct: ":="},
		{Text: "What is the zero value of an int?", Options: []string{"0", "nil", "-1", "undefined"}, Correct: "0"},
		{Text: "Which builtin appends to a slice?", Options: []string{"append", "push", "add", "insert"}, Correct: "append"},
		{Text: "What does go fmt do?", Options: []string{"Formats source code", "Runs tests", "Builds binaries", "Downloads modules"}, Correct: "Formats source code"},
		{Text: "Which type is a key-value collection?", Options: []string{"map", "slice", "array", "channel"}, Correct: "map"},
		{Text: "How is an exported identifier marked?", Options: []string{"Capitalized first letter", "export keyword", "public keyword", "@export tag"}, Correct: "Capitalized first letter"},
		{Text: "Which statement starts a goroutine?", Options: []string{"go f()", "async f()", "spawn f()", "thread f()"}, Correct: "go f()"},
		{Text: "What is the zero value of a pointer?", Options: []string{"nil", "0", "empty struct", "undefined"}, Correct: "nil"},
		{Text: "Which file declares module dependencies?", Options: []string{"go.mod", "package.json", "Gopkg.toml", "deps.yaml"}, Correct: "go.mod"},
		{Text: "Which construct iterates over a slice?", Options: []string{"for range", "foreach", "while in", "iterate"}, Correct: "for range"},
	}
	medium := []seedQuestion{
		{Text: "What happens when you read from a nil channel?", Options: []string{"Blocks forever", "Returns zero value", "Panics", "Compile error"}, Correct: "Blocks forever"},
		{Text: "Which interface has the method Error() string?", Options: []string{"error", "fmt.Stringer", "io.Reader", "sort.Interface"}, Correct: "error"},
		{Text: "What does defer guarantee?", Options: []string{"Runs when the function returns", "Runs on a new goroutine", "Runs at program exit", "Runs before the next statement"}, Correct: "Runs when the function returns"},
		{Text: "How do you detect a missing map key?", Options: []string{"Comma-ok assignment", "Catch the panic", "Check for -1", "Use contains()"}, Correct: "Comma-ok assignment"},
		{Text: "What does sync.WaitGroup coordinate?", Options: []string{"Waiting for goroutines to finish", "Mutual exclusion", "Channel buffering", "Timer scheduling"}, Correct: "Waiting for goroutines to finish"},
		{Text: "Which copy semantics do slices have when passed to functions?", Options: []string{"Header copied, backing array shared", "Deep copy", "Fully aliased including header", "Copy on write"}, Correct: "Header copied, backing array shared"},
		{Text: "What does errors.Is check?", Options: []string{"Whether an error wraps a target", "Error message equality", "Error type name", "Stack trace depth"}, Correct: "Whether an error wraps a target"},
		{Text: "Which context function attaches a deadline?", Options: []string{"context.WithTimeout", "context.Deadline", "context.SetTimer", "context.After"}, Correct: "context.WithTimeout"},
	}
	hard := []seedQuestion{
		{Text: "When does a select with multiple ready cases choose one?", Options: []string{"Uniformly at random", "Top to bottom", "By channel creation order", "Last written case"}, Correct: "Uniformly at random"},
		{Text: "What does a nil map permit?", Options: []string{"Reads but not writes", "Writes but not reads", "Neither", "Both"}, Correct: "Reads but not writes"},
		{Text: "Which condition makes an interface value non-nil yet hold a nil pointer?", Options: []string{"Typed nil assigned to the interface", "Zero value interface", "Closed channel", "Empty struct"}, Correct: "Typed nil assigned to the interface"},
		{Text: "What does the race detector instrument?", Options: []string{"Unsynchronized memory access", "Deadlocks", "Goroutine leaks", "Allocation hot spots"}, Correct: "Unsynchronized memory access"},
		{Text: "When is a struct comparable with ==?", Options: []string{"When all fields are comparable", "Always", "Only if it has no methods", "Only pointer structs"}, Correct: "When all fields are comparable"},
		{Text: "What bounds a buffered channel send?", Options: []string{"Blocks when the buffer is full", "Never blocks", "Drops when full", "Panics when full"}, Correct: "Blocks when the buffer is full"},
	}

	out := make([]seedQuestion, 0, len(easy)+len(medium)+len(hard))
	for _, q := range easy {
		q.Difficulty = "easy"
		q.Points = 5
		out = append(out, q)
	}
	for _, q := range medium {
		q.Difficulty = "medium"
		q.Points = 10
		out = append(out, q)
	}
	for _, q := range hard {
		q.Difficulty = "hard"
		q.Points = 15
		out = append(out, q)
	}
	return out
}
