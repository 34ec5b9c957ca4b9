package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/platform/auth"
)

// tokenEnv supplies --token when the flag is not given.
const tokenEnv = "CARD_API_TOKEN"

// settleTimeout bounds the wait for the last username result after input ends.
const settleTimeout = 15 * time.Second

func newRootCmd(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "cardctl",
		Short:         "Card engine utilities",
		SilenceUsage:  true,
	}
	root.AddCommand(
		newSlugCmd(),
		newPriceCmd(),
		newVCardCmd(open),
		newUsernameCmd(open),
	)
	return root
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug NAME...",
		Short: "Print the URL slug of each template name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				slug := identifier.GenerateSlug(name)
				if slug == "" {
					return fmt.Errorf("%q has no slug characters", name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}
}

type quoteLine struct {
	Category             commerce.Category `json:"category"`
	OriginalPrice        float64           `json:"original_price"`
	Discount             float64           `json:"discount"`
	Price                float64           `json:"price"`
	PriceDisplay         string            `json:"price_display"`
	OriginalPriceDisplay string            `json:"original_price_display"`
}

func newPriceCmd() *cobra.Command {
	var (
		category string
		original float64
		discount float64
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote a template price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := commerce.ParseCategory(category)
			if err != nil {
				return err
			}
			p := commerce.NewPricing(c, original, discount)
			return json.NewEncoder(cmd.OutOrStdout()).Encode(quoteLine{
				Category:             p.Category(),
				OriginalPrice:        p.OriginalPrice(),
				Discount:             p.Discount(),
				Price:                p.Price(),
				PriceDisplay:         p.Display(),
				OriginalPriceDisplay: p.DisplayOriginal(),
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", string(commerce.CategoryPremium), "free or premium")
	cmd.Flags().Float64Var(&original, "original", 0, "original price")
	cmd.Flags().Float64Var(&discount, "discount", 0, "discount percentage")
	return cmd
}

func newVCardCmd(open openFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "vcard USERNAME",
		Short: "Export a public card as a vCard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := open(ctx)
			if err != nil {
				return err
			}
			defer b.close()

			u, err := b.profiles.GetByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			card, err := render.ContactCard(u.Card())
			if err != nil {
				return err
			}
			switch output {
			case "":
				_, err = io.WriteString(cmd.OutOrStdout(), card.Text)
				return err
			case "-":
				output = card.Filename
			}
			if err := os.WriteFile(output, []byte(card.Text), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `write to a file; "-" uses the card's download name`)
	return cmd
}

func newUsernameCmd(open openFunc) *cobra.Command {
	var (
		token   string
		uid     string
		current string
		quiet   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "username",
		Short: "Check username edits read from stdin, one per line",
		Long: "Each line is treated as the latest edit of a username field. Lookups run\n" +
			"after the input has been quiet for the debounce period and each answer is\n" +
			"printed as a JSON line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := open(ctx)
			if err != nil {
				return err
			}
			defer b.close()

			if token == "" {
				token = os.Getenv(tokenEnv)
			}
			cred, err := b.credential(ctx, uid, token)
			if err != nil {
				return fmt.Errorf("verifying token: %w", err)
			}
			if !cmd.Flags().Changed("debounce") {
				quiet = b.debounce
			}
			return watchUsernames(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), b.profiles, cred, current, quiet)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default $"+tokenEnv+")")
	cmd.Flags().StringVar(&uid, "uid", "", "caller's user id; resolved from the token when empty")
	cmd.Flags().StringVar(&current, "current", "", "caller's current username")
	cmd.Flags().DurationVar(&quiet, "debounce", identifier.DefaultQuietPeriod, "quiet period before a lookup")
	return cmd
}

type availabilityLine struct {
	Candidate string `json:"candidate"`
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
	Checked   bool   `json:"checked"`
}

// watchUsernames feeds each line of in to a debounced Checker and writes
// every result to out. After in is exhausted it waits for the answer to the
// final edit.
func watchUsernames(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	lookup identifier.Lookup,
	cred auth.Credential,
	current string,
	quiet time.Duration,
) error {
	enc := json.NewEncoder(out)

	var (
		mu     sync.Mutex
		latest *identifier.Result
		encErr error
	)
	notify := make(chan struct{}, 1)

	checker := identifier.NewChecker(lookup, func(r identifier.Result) {
		mu.Lock()
		latest = &r
		if err := enc.Encode(availabilityLine{
			Candidate: r.Candidate,
			Valid:     identifier.ValidUsername(r.Candidate),
			Available: r.Available,
			Checked:   r.Checked,
		}); err != nil && encErr == nil {
			encErr = err
		}
		mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
	}, identifier.WithQuietPeriod(quiet))
	defer checker.Close()

	var last string
	submitted := false
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		last = checker.Submit(cred, sc.Text(), current)
		submitted = true
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if !submitted {
		return nil
	}

	deadline := time.NewTimer(quiet + settleTimeout)
	defer deadline.Stop()
	for {
		mu.Lock()
		done := latest != nil && latest.Candidate == last
		err := encErr
		mu.Unlock()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-notify:
		case <-deadline.C:
			return fmt.Errorf("no answer for %q", last)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
