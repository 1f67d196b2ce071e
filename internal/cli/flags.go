package cli

import (
	goflags "github.com/jessevdk/go-flags"
)

// Flags holds the command line options. Options left unset are filled in
// interactively or from the saved model preferences.
type Flags struct {
	Username string `short:"u" long:"username" description:"Twitter handle to impersonate"`
	Tweets   int    `short:"t" long:"tweets" description:"Maximum number of tweets to analyze" default:"10"`
	Provider string `long:"provider" description:"Model provider (openai, anthropic, gemini, ollama)"`
	Model    string `short:"m" long:"model" description:"Model name"`
	Scrape   bool   `long:"scrape" description:"Scrape and distill the account, then exit"`
	Post     bool   `long:"post" description:"Generate a new post instead of chatting"`
	NoCache  bool   `long:"no-cache" description:"Ignore the cached persona and synthesize a fresh one"`
	Copy     bool   `short:"c" long:"copy" description:"Copy the generated post to the clipboard"`
	Offline  bool   `long:"offline" description:"Use a previously distilled account file instead of scraping"`
	DryRun   bool   `long:"dry-run" description:"Echo prompts instead of calling a model provider"`
	Debug    int    `long:"debug" description:"Debug level (0 through 4)" default:"0"`
	Version  bool   `long:"version" description:"Print version and exit"`
	Forget   bool   `long:"forget-model" description:"Drop the saved model preference for the handle"`
}

// Init parses the command line into a Flags value.
func Init() (ret *Flags, err error) {
	ret = &Flags{}
	parser := goflags.NewParser(ret, goflags.Default)
	if _, err = parser.Parse(); err != nil {
		return nil, err
	}
	return ret, nil
}
