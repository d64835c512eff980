// Package agent implements the AI assistant of the trade desk.
//
// A facilitator chat answers the user and delegates to experts: the analyst
// reads the desk through tools, the trader searches recent news.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, a markdown document. It defaults to a plain print on w.
	Print func(answer string)
}

// New creates an Agent reading the user from r and writing to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	a := &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
	a.Print = func(answer string) { fmt.Fprintln(a.w, answer) }
	return a
}

// Start creates the chat of every expert and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. prompts are sent first, as if typed by
// the user. The session ends on "bye" or at the end of input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the trade desk assistant. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
				return nil // Clean exit on Ctrl+D
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.Print(answer)
	}
}
