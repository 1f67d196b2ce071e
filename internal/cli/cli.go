package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	goflags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/personafy/personafy/internal/ai"
	"github.com/personafy/personafy/internal/cache"
	"github.com/personafy/personafy/internal/core"
	"github.com/personafy/personafy/internal/domain"
	debuglog "github.com/personafy/personafy/internal/log"
	"github.com/personafy/personafy/internal/store"
	"github.com/personafy/personafy/internal/twitter"
)

// Cli runs the full flow: resolve flags, acquire the distilled account,
// synthesize or reuse a persona, then chat or generate a post.
func Cli(version string) (err error) {
	currentFlags, err := Init()
	if err != nil {
		if goflags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if currentFlags.Version {
		fmt.Println(version)
		return nil
	}

	debuglog.SetLevel(debuglog.LevelFromInt(currentFlags.Debug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input := bufio.NewReader(os.Stdin)
	output := os.Stdout

	if currentFlags.Username == "" {
		if currentFlags.Username, err = promptLine(input, output, "Twitter handle to impersonate: @"); err != nil {
			return err
		}
	}
	currentFlags.Username = strings.TrimPrefix(strings.TrimSpace(currentFlags.Username), "@")
	if currentFlags.Username == "" {
		return errors.New("no twitter handle provided")
	}

	if currentFlags.Forget {
		if err = unsetModelPref(currentFlags.Username); err != nil {
			return err
		}
		fmt.Fprintf(output, "Dropped the saved model preference for @%s\n", currentFlags.Username)
	}

	if currentFlags.Scrape {
		return scrapeOnly(ctx, currentFlags, output)
	}

	account, err := acquireAccount(ctx, currentFlags, output)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(currentFlags, input, output)
	if err != nil {
		return err
	}
	created := ai.CreateModel(settings)
	if !created.Success {
		return errors.New(created.Message)
	}

	db, artifacts, err := openStorage()
	if err != nil {
		return err
	}
	chatter := core.NewChatter(db, artifacts, created.Model)

	persona, err := ensurePersona(ctx, chatter, db, account, currentFlags.NoCache)
	if err != nil {
		return err
	}

	if currentFlags.Post {
		return generatePost(ctx, chatter, account, currentFlags.Copy, output)
	}
	return chatLoop(ctx, chatter, db, persona, input, output)
}

func openStorage() (db *store.Db, artifacts *cache.Cache, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolving user config directory")
	}
	appDir := filepath.Join(configDir, "personafy")
	if err = os.MkdirAll(appDir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "creating config directory")
	}
	db = store.New(filepath.Join(appDir, "db.json"))

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolving user cache directory")
	}
	if artifacts, err = cache.New(filepath.Join(cacheDir, "personafy", "personas")); err != nil {
		return nil, nil, err
	}
	return db, artifacts, nil
}

// resolveSettings picks the provider and model from flags, then the saved
// preference for the handle, then interactively, and remembers the choice.
func resolveSettings(currentFlags *Flags, input *bufio.Reader, output io.Writer) (ret ai.Settings, err error) {
	if currentFlags.DryRun {
		return ai.DefaultSettings(ai.ProviderDryRun, "dry-run-model"), nil
	}

	provider := currentFlags.Provider
	name := currentFlags.Model
	if provider == "" && name == "" {
		if saved, savedModel, ok := modelPrefFor(currentFlags.Username); ok {
			provider, name = saved, savedModel
			debuglog.Log("Using saved model %s/%s for @%s\n", provider, name, currentFlags.Username)
		}
	}

	interactive := false
	if provider == "" {
		providers := lo.Map(ai.Providers(), func(p ai.Provider, _ int) string { return string(p) })
		if provider, err = chooseOption(input, output, "provider", providers); err != nil {
			return ret, err
		}
		interactive = true
	}
	if !ai.IsValidProvider(provider) {
		return ret, errors.Errorf("unsupported provider: %s", provider)
	}
	if name == "" {
		if name, err = chooseOption(input, output, "model", ai.ModelsFor(ai.Provider(provider))); err != nil {
			return ret, err
		}
		interactive = true
	}

	if interactive {
		if prefErr := setModelPref(currentFlags.Username, provider, name); prefErr != nil {
			debuglog.LogAt(debuglog.Detailed, "Could not save model preference: %v\n", prefErr)
		}
	}
	return ai.DefaultSettings(ai.Provider(provider), name), nil
}

func scrapeOnly(ctx context.Context, currentFlags *Flags, output io.Writer) (err error) {
	scraper, err := liveScraper()
	if err != nil {
		return err
	}
	result := twitter.Distill(ctx, scraper, currentFlags.Username, currentFlags.Tweets)
	if !result.Success {
		return errors.New(result.Message)
	}
	fmt.Fprintf(output, "Distilled %d tweets from @%s to %s\n", len(result.Account.Tweets), currentFlags.Username, result.File)
	return nil
}

// acquireAccount returns the distilled account, preferring an existing
// distilled file and scraping only when none is usable.
func acquireAccount(ctx context.Context, currentFlags *Flags, output io.Writer) (ret *twitter.Account, err error) {
	file := fmt.Sprintf("%s.distilled.json", currentFlags.Username)

	if currentFlags.Offline {
		return twitter.LoadAccount(file)
	}

	if account, loadErr := twitter.LoadAccount(file); loadErr == nil {
		debuglog.Log("Using distilled profile %s\n", file)
		return account, nil
	}

	scraper, err := liveScraper()
	if err != nil {
		return nil, err
	}
	result := twitter.Distill(ctx, scraper, currentFlags.Username, currentFlags.Tweets)
	if !result.Success {
		return nil, errors.New(result.Message)
	}
	fmt.Fprintf(output, "Distilled %d tweets from @%s\n", len(result.Account.Tweets), currentFlags.Username)
	return result.Account, nil
}

func liveScraper() (twitter.Scraper, error) {
	credentials, err := twitter.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	if credentials == nil {
		return nil, errors.New("twitter credentials are not configured; set TWITTER_COOKIES in the environment or a .env file")
	}
	return twitter.NewLiveScraper(credentials), nil
}

// ensurePersona returns the stored persona for the account when it is
// still fresh, otherwise synthesizes a replacement. Replacing a persona
// drops its conversations.
func ensurePersona(ctx context.Context, chatter *core.Chatter, db *store.Db, account *twitter.Account, noCache bool) (ret *domain.Persona, err error) {
	existing, found := findPersona(db, account.Username)

	if !noCache && found && existing.LastTweetID != nil && *existing.LastTweetID == account.NewestTweetID() {
		debuglog.Log("Reusing stored persona for @%s\n", account.Username)
		return &existing, nil
	}

	persona, err := chatter.SynthesizePersona(ctx, account, noCache)
	if err != nil {
		return nil, err
	}
	if found {
		if status := db.DeletePersona(existing.ID); !status.Success {
			return nil, errors.New(status.Message)
		}
	}
	if status := db.AddPersona(*persona); !status.Success {
		return nil, errors.New(status.Message)
	}
	return persona, nil
}

func findPersona(db *store.Db, handle string) (ret domain.Persona, found bool) {
	all := db.GetAllPersona()
	if !all.Success {
		return ret, false
	}
	return lo.Find(all.Value, func(p domain.Persona) bool { return p.Handle == handle })
}

func generatePost(ctx context.Context, chatter *core.Chatter, account *twitter.Account, copyToClipboard bool, output io.Writer) (err error) {
	fmt.Fprintf(output, "Generating a post for @%s...\n\n", account.Username)
	post, err := chatter.GeneratePost(ctx, account, func(fragment string) {
		fmt.Fprint(output, fragment)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(output)

	if copyToClipboard {
		if err = clipboard.WriteAll(post); err != nil {
			return errors.Wrap(err, "copying post to clipboard")
		}
		fmt.Fprintln(output, "Copied to clipboard.")
	}
	return nil
}

func chatLoop(ctx context.Context, chatter *core.Chatter, db *store.Db, persona *domain.Persona, input *bufio.Reader, output io.Writer) (err error) {
	conversation := domain.NewConversation(persona.ID)
	if status := db.AddConversation(conversation); !status.Success {
		return errors.New(status.Message)
	}

	fmt.Fprintf(output, "Chatting with @%s. Type 'exit' to quit.\n", persona.Handle)
	for {
		line, promptErr := promptLine(input, output, "> ")
		if promptErr != nil {
			return nil
		}
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		fmt.Fprintf(output, "@%s: ", persona.Handle)
		_, err = chatter.SendMessage(ctx, conversation.ID, line, func(fragment string) {
			fmt.Fprint(output, fragment)
		})
		fmt.Fprintln(output)
		if err != nil {
			fmt.Fprintf(output, "error: %v\n", err)
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}
