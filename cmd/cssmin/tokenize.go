package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssmin/scanner"
	"cssmin/token"
)

var tokenizeFormat string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.css",
	Short: "Tokenize a CSS file",
	Long:  `Tokenize breaks a stylesheet into its lexical tokens and dumps them one per line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringVar(&tokenizeFormat, "format", "pretty", "output format (pretty|json)")
}

type tokenPayload struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var toks []token.Token
	s := scanner.New(src)
	for {
		tok := s.Scan()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	switch tokenizeFormat {
	case "pretty":
		for _, tok := range toks {
			fmt.Fprintf(out, "%5d..%-5d %-10s %q\n", tok.Span.Start, tok.Span.End, tok.Kind, tok.Text())
		}
		return nil
	case "json":
		payload := make([]tokenPayload, len(toks))
		for i, tok := range toks {
			payload[i] = tokenPayload{
				Kind:  tok.Kind.String(),
				Text:  tok.Text(),
				Start: tok.Span.Start,
				End:   tok.Span.End,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unknown format: %s", tokenizeFormat)
	}
}
