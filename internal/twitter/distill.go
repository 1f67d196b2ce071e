package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// MaxScrapeTweets is a hard cap on how many posts one distillation fetches,
// regardless of what the caller asks for.
const MaxScrapeTweets = 300

// DistillResult reports a distillation. File and Account are meaningful
// only when Success is true; Account may still be set on a save failure so
// the caller can proceed without the file.
type DistillResult struct {
	Success bool
	Message string
	File    string
	Account *Account
}

// Distill fetches an account's profile and up to min(maxTweets,
// MaxScrapeTweets) recent posts through the scraper and writes the combined
// document to <username>.distilled.json in the working directory.
func Distill(ctx context.Context, scraper Scraper, username string, maxTweets int) DistillResult {
	if username == "" {
		return DistillResult{Message: "username is empty"}
	}

	loggedIn, err := scraper.IsLoggedIn(ctx)
	if err != nil {
		return DistillResult{Message: fmt.Sprintf("checking scraper session: %v", err)}
	}
	if !loggedIn {
		return DistillResult{Message: "scraper is not logged in"}
	}

	if maxTweets <= 0 || maxTweets > MaxScrapeTweets {
		maxTweets = MaxScrapeTweets
	}

	tweets, err := scraper.GetTweets(ctx, username, maxTweets)
	if err != nil {
		return DistillResult{Message: fmt.Sprintf("fetching tweets: %v", err)}
	}
	if len(tweets) == 0 {
		return DistillResult{Message: "no tweets found"}
	}

	profile, err := scraper.GetProfile(ctx, username)
	if err != nil {
		return DistillResult{Message: fmt.Sprintf("fetching profile: %v", err)}
	}

	account := &Account{Username: username, Profile: *profile, Tweets: tweets}

	file := fmt.Sprintf("%s.distilled.json", username)
	if err = SaveAccount(account, file); err != nil {
		return DistillResult{Message: fmt.Sprintf("saving distilled profile: %v", err), Account: account}
	}

	return DistillResult{Success: true, File: file, Account: account}
}

func SaveAccount(account *Account, path string) (err error) {
	var content []byte
	if content, err = json.MarshalIndent(account, "", "  "); err != nil {
		return errors.Wrap(err, "encoding distilled profile")
	}
	if err = os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrap(err, "writing distilled profile")
	}
	return nil
}

func LoadAccount(path string) (ret *Account, err error) {
	var content []byte
	if content, err = os.ReadFile(path); err != nil {
		return nil, errors.Wrap(err, "reading distilled profile")
	}
	ret = &Account{}
	if err = json.Unmarshal(content, ret); err != nil {
		return nil, errors.Wrap(err, "parsing distilled profile")
	}
	return ret, nil
}
