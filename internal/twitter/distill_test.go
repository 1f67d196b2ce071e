package twitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func testAccount(tweets int) *Account {
	account := &Account{
		Username: "ada",
		Profile:  Profile{Biography: "mathematician", FollowersCount: 42},
	}
	for i := 0; i < tweets; i++ {
		account.Tweets = append(account.Tweets, Tweet{
			ID:   fmt.Sprintf("t%d", tweets-i),
			Text: fmt.Sprintf("tweet %d", tweets-i),
		})
	}
	return account
}

func TestDistill_WritesDocument(t *testing.T) {
	t.Chdir(t.TempDir())
	scraper := NewReplayScraper(testAccount(3))

	ret := Distill(context.Background(), scraper, "ada", 10)

	if !ret.Success {
		t.Fatalf("Distill failed: %s", ret.Message)
	}
	if ret.File != "ada.distilled.json" {
		t.Errorf("File = %q, want ada.distilled.json", ret.File)
	}
	if _, err := os.Stat(ret.File); err != nil {
		t.Errorf("distilled file not written: %v", err)
	}
	if got := len(ret.Account.Tweets); got != 3 {
		t.Errorf("Account has %d tweets, want 3", got)
	}
}

func TestDistill_EmptyUsername(t *testing.T) {
	ret := Distill(context.Background(), NewReplayScraper(testAccount(1)), "", 10)

	if ret.Success {
		t.Fatal("expected failure for empty username")
	}
	if ret.Message != "username is empty" {
		t.Errorf("Message = %q", ret.Message)
	}
}

func TestDistill_NoTweets(t *testing.T) {
	ret := Distill(context.Background(), NewReplayScraper(testAccount(0)), "ada", 10)

	if ret.Success {
		t.Fatal("expected failure when account has no posts")
	}
	if ret.Message != "no tweets found" {
		t.Errorf("Message = %q", ret.Message)
	}
}

func TestDistill_HonorsMaxTweets(t *testing.T) {
	t.Chdir(t.TempDir())

	ret := Distill(context.Background(), NewReplayScraper(testAccount(20)), "ada", 5)

	if !ret.Success {
		t.Fatalf("Distill failed: %s", ret.Message)
	}
	if got := len(ret.Account.Tweets); got != 5 {
		t.Errorf("Account has %d tweets, want 5", got)
	}
}

func TestAccount_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.distilled.json")
	account := testAccount(2)

	if err := SaveAccount(account, path); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	loaded, err := LoadAccount(path)
	if err != nil {
		t.Fatalf("LoadAccount: %v", err)
	}
	if loaded.Username != "ada" {
		t.Errorf("Username = %q, want ada", loaded.Username)
	}
	if loaded.NewestTweetID() != account.NewestTweetID() {
		t.Errorf("NewestTweetID = %q, want %q", loaded.NewestTweetID(), account.NewestTweetID())
	}
}

func TestReplayScraper_UnknownAccount(t *testing.T) {
	scraper := NewReplayScraper(testAccount(1))

	if _, err := scraper.GetProfile(context.Background(), "grace"); err == nil {
		t.Error("expected error for unrecorded account")
	}
	if _, err := scraper.GetTweets(context.Background(), "grace", 1); err == nil {
		t.Error("expected error for unrecorded account")
	}
}
