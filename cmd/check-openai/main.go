// Command check-openai verifies that the configured language-model endpoint
// answers and selects tools, before the server is pointed at it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	openaiadapter "github.com/kovilapp/temple-admin/internal/infrastructure/external/openai"
)

func main() {
	apiKey := flag.String("key", "", "OpenAI API key (or set OPENAI_API_KEY)")
	model := flag.String("model", "gpt-4o-mini", "Model to test against")
	timeout := flag.Duration("timeout", 30*time.Second, "API call timeout")
	prompt := flag.String("prompt", "Create a receipt for Kumar, one archana, 200 rupees", "Prompt to send")
	flag.Parse()

	_ = gotenv.Load()

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if *apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: OPENAI_API_KEY not set and no --key flag provided")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	completer := openaiadapter.NewCompleter(*apiKey, *model, 0.3, 0, *timeout, logger)

	ctx := context.Background()

	fmt.Printf("Sending prompt to %s...\n", *model)
	result, err := completer.Complete(ctx, *prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: completion failed: %v\n", err)
		os.Exit(1)
	}

	if result.Call != nil {
		fmt.Printf("Tool selected: %s\n", result.Call.Name)
		fmt.Printf("Arguments: %s\n", string(result.Call.Arguments))
	} else {
		fmt.Printf("Text reply: %s\n", result.Text)
	}
	fmt.Println("Connection OK")
}
