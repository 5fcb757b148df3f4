package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalev/feedsync/pkg/domain"
)

func setupRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

// seedFeed creates an account, group and feed for article-level tests
func seedFeed(t *testing.T, repos *Repositories) *domain.Feed {
	t.Helper()
	ctx := context.Background()

	account, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)

	group, err := repos.Group.EnsureGroup(ctx, account.ID, "News")
	require.NoError(t, err)

	f := &domain.Feed{AccountID: account.ID, GroupID: group.ID, URL: "https://example.com/feed.xml", Title: "Example"}
	require.NoError(t, repos.Feed.CreateFeed(ctx, f))
	return f
}

func TestAccountRepository_EnsureDefaultAccount(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	first, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Local", first.Name)
	assert.Equal(t, domain.AccountLocal, first.Kind)

	// second call finds the existing account instead of creating another
	second, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	accounts, err := repos.Account.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestGroupRepository_EnsureGroup(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	account, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)

	g1, err := repos.Group.EnsureGroup(ctx, account.ID, "Tech")
	require.NoError(t, err)
	g2, err := repos.Group.EnsureGroup(ctx, account.ID, "Tech")
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID, "ensure must be idempotent per (account, name)")

	_, err = repos.Group.EnsureGroup(ctx, account.ID, "Blogs")
	require.NoError(t, err)

	groups, err := repos.Group.GetGroups(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	// insertion order
	assert.Equal(t, "Tech", groups[0].Name)
	assert.Equal(t, "Blogs", groups[1].Name)
}

func TestFeedRepository_CRUD(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	feed := seedFeed(t, repos)

	got, err := repos.Feed.GetFeedByURL(ctx, feed.AccountID, feed.URL)
	require.NoError(t, err)
	assert.Equal(t, feed.ID, got.ID)
	assert.Equal(t, 1800, got.FetchInterval, "default interval applied")

	// duplicate (account, url) is rejected by the unique constraint
	dup := &domain.Feed{AccountID: feed.AccountID, GroupID: feed.GroupID, URL: feed.URL}
	require.Error(t, repos.Feed.CreateFeed(ctx, dup))

	// sync metadata updates
	require.NoError(t, repos.Feed.UpdateFeedSynced(ctx, feed.ID, domain.CacheValidators{ETag: `"v2"`, LastModified: "lm"}))
	got, err = repos.Feed.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastSynced)
	assert.Equal(t, `"v2"`, got.ETag)
	assert.Equal(t, "lm", got.LastModified)
	assert.Empty(t, got.LastError)

	require.NoError(t, repos.Feed.UpdateFeedError(ctx, feed.ID, "fetch http status 503"))
	got, err = repos.Feed.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, "fetch http status 503", got.LastError)
	assert.Equal(t, 1, got.ErrorCount)
	assert.NotNil(t, got.LastSynced, "failed sync still advances the timestamp")

	// flags
	require.NoError(t, repos.Feed.UpdateFeedFlags(ctx, feed.ID, true, true))
	got, err = repos.Feed.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	assert.True(t, got.Notify)
	assert.True(t, got.FullContent)

	// delete
	require.NoError(t, repos.Feed.DeleteFeed(ctx, feed.ID))
	_, err = repos.Feed.GetFeed(ctx, feed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repos.Feed.DeleteFeed(ctx, feed.ID), domain.ErrNotFound)
}

func TestArticleRepository_InsertIfAbsent(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	feed := seedFeed(t, repos)

	a := &domain.Article{FeedID: feed.ID, GUID: "g1", Title: "One", Link: "http://example.com/1", Published: time.Now()}
	inserted, err := repos.Article.InsertIfAbsent(ctx, a)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, a.ID)

	// same identity again is a no-op
	again := &domain.Article{FeedID: feed.ID, GUID: "g1", Title: "One updated", Published: time.Now()}
	inserted, err = repos.Article.InsertIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repos.Article.CountByFeed(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestArticleRepository_SetFlagsMissingArticle(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	seedFeed(t, repos)

	assert.ErrorIs(t, repos.Article.SetRead(ctx, 12345, true), domain.ErrNotFound)
	assert.ErrorIs(t, repos.Article.SetStarred(ctx, 12345, true), domain.ErrNotFound)
}

func TestRepositories_InTransaction(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	account, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)

	t.Run("commit", func(t *testing.T) {
		err := repos.InTransaction(ctx, func(tx *Repositories) error {
			group, err := tx.Group.EnsureGroup(ctx, account.ID, "Tech")
			if err != nil {
				return err
			}
			return tx.Feed.CreateFeed(ctx, &domain.Feed{
				AccountID: account.ID, GroupID: group.ID, URL: "https://committed.example.com/feed",
			})
		})
		require.NoError(t, err)

		_, err = repos.Feed.GetFeedByURL(ctx, account.ID, "https://committed.example.com/feed")
		assert.NoError(t, err, "committed writes are visible")
	})

	t.Run("rollback", func(t *testing.T) {
		boom := assert.AnError
		err := repos.InTransaction(ctx, func(tx *Repositories) error {
			group, err := tx.Group.EnsureGroup(ctx, account.ID, "Doomed")
			if err != nil {
				return err
			}
			if err := tx.Feed.CreateFeed(ctx, &domain.Feed{
				AccountID: account.ID, GroupID: group.ID, URL: "https://doomed.example.com/feed",
			}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = repos.Feed.GetFeedByURL(ctx, account.ID, "https://doomed.example.com/feed")
		assert.ErrorIs(t, err, domain.ErrNotFound, "rolled-back writes must not be visible")

		groups, err := repos.Group.GetGroups(ctx, account.ID)
		require.NoError(t, err)
		for _, g := range groups {
			assert.NotEqual(t, "Doomed", g.Name)
		}
	})
}

func TestArticleRepository_RefreshSummaryPreservesUserState(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	feed := seedFeed(t, repos)

	a := &domain.Article{FeedID: feed.ID, GUID: "g1", Title: "One", Summary: "old", Published: time.Now()}
	_, err := repos.Article.InsertIfAbsent(ctx, a)
	require.NoError(t, err)

	require.NoError(t, repos.Article.SetStarred(ctx, a.ID, true))
	require.NoError(t, repos.Article.SetRead(ctx, a.ID, true))

	require.NoError(t, repos.Article.RefreshSummary(ctx, feed.ID, "g1", "One v2", "new summary"))

	got, err := repos.Article.GetByGUID(ctx, feed.ID, "g1")
	require.NoError(t, err)
	assert.Equal(t, "One v2", got.Title)
	assert.Equal(t, "new summary", got.Summary)
	assert.True(t, got.Starred, "user state untouched by summary refresh")
	assert.True(t, got.Read)
}

func TestArticleRepository_UpdateExtraction(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	feed := seedFeed(t, repos)

	a := &domain.Article{FeedID: feed.ID, GUID: "g1", Title: "One", Published: time.Now()}
	_, err := repos.Article.InsertIfAbsent(ctx, a)
	require.NoError(t, err)

	require.NoError(t, repos.Article.UpdateExtraction(ctx, a.ID, "full body text", ""))
	got, err := repos.Article.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "full body text", got.Content)

	require.NoError(t, repos.Article.UpdateExtraction(ctx, a.ID, "", "extraction failed"))
	got, err = repos.Article.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "extraction failed", got.ExtractErr)
}

func TestSettingRepository(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	// defaults when unset
	on, err := repos.Setting.GetBool(ctx, SettingNotificationsEnabled, true)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, repos.Setting.SetBool(ctx, SettingNotificationsEnabled, false))
	on, err = repos.Setting.GetBool(ctx, SettingNotificationsEnabled, true)
	require.NoError(t, err)
	assert.False(t, on)

	// plain string roundtrip
	require.NoError(t, repos.Setting.SetSetting(ctx, "some_key", "v"))
	v, err := repos.Setting.GetSetting(ctx, "some_key")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
