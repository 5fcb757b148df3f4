package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/opml"
)

// feedResponse is the API representation of a feed
type feedResponse struct {
	ID            int64      `json:"id"`
	AccountID     int64      `json:"account_id"`
	GroupID       int64      `json:"group_id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	SiteURL       string     `json:"site_url,omitempty"`
	Notify        bool       `json:"notify"`
	FullContent   bool       `json:"full_content"`
	FetchInterval int        `json:"fetch_interval"`
	LastSynced    *time.Time `json:"last_synced,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	ErrorCount    int        `json:"error_count"`
}

func toFeedResponse(f *domain.Feed) feedResponse {
	return feedResponse{
		ID:            f.ID,
		AccountID:     f.AccountID,
		GroupID:       f.GroupID,
		URL:           f.URL,
		Title:         f.Title,
		SiteURL:       f.SiteURL,
		Notify:        f.Notify,
		FullContent:   f.FullContent,
		FetchInterval: f.FetchInterval,
		LastSynced:    f.LastSynced,
		LastError:     f.LastError,
		ErrorCount:    f.ErrorCount,
	}
}

// articleResponse is the API representation of an article
type articleResponse struct {
	ID        int64     `json:"id"`
	FeedID    int64     `json:"feed_id"`
	GUID      string    `json:"guid"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content,omitempty"`
	Author    string    `json:"author,omitempty"`
	Published time.Time `json:"published"`
	Read      bool      `json:"read"`
	Starred   bool      `json:"starred"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		FeedID:    a.FeedID,
		GUID:      a.GUID,
		Title:     a.Title,
		Link:      a.Link,
		Summary:   a.Summary,
		Content:   a.Content,
		Author:    a.Author,
		Published: a.Published,
		Read:      a.Read,
		Starred:   a.Starred,
	}
}

// statusHandler reports service health and known accounts
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.GetAccounts(r.Context())
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get accounts: %w", err), http.StatusInternalServerError)
		return
	}

	type accountInfo struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	resp := struct {
		Status   string        `json:"status"`
		Version  string        `json:"version"`
		Accounts []accountInfo `json:"accounts"`
	}{
		Status:  "ok",
		Version: s.version,
		Accounts: lo.Map(accounts, func(a *domain.Account, _ int) accountInfo {
			return accountInfo{ID: a.ID, Name: a.Name, Kind: string(a.Kind)}
		}),
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// syncHandler starts a sync run in the background and responds right away
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scope     string `json:"scope"` // all, account or feed
		AccountID int64  `json:"account_id"`
		FeedID    int64  `json:"feed_id"`
		Forced    bool   `json:"forced"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	var scope domain.SyncScope
	switch domain.ScopeKind(req.Scope) {
	case domain.ScopeAll, "":
		scope = domain.ScopeEverything()
	case domain.ScopeAccount:
		if req.AccountID == 0 {
			renderError(w, r, errors.New("account_id required for account scope"), http.StatusBadRequest)
			return
		}
		scope = domain.ScopeOfAccount(req.AccountID)
	case domain.ScopeFeed:
		if req.FeedID == 0 {
			renderError(w, r, errors.New("feed_id required for feed scope"), http.StatusBadRequest)
			return
		}
		scope = domain.ScopeOfFeed(req.FeedID)
	default:
		renderError(w, r, fmt.Errorf("unknown scope %q", req.Scope), http.StatusBadRequest)
		return
	}

	reason := domain.ReasonManual
	if req.Forced {
		reason = domain.ReasonForced
	}

	// detached from the request, a run can outlive the HTTP exchange
	go func() {
		res, err := s.trigger.SyncAll(context.Background(), scope, reason)
		if err != nil {
			log.Printf("[WARN] sync run failed: %v", err)
			return
		}
		log.Printf("[INFO] sync run done: %d inserted, %d failed, took %v", res.Inserted, res.Failed(), res.Elapsed)
	}()

	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "started"})
}

// listFeedsHandler returns feeds for an account
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryInt64(r, "account_id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	feeds, err := s.store.GetFeeds(r.Context(), accountID)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get feeds: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, lo.Map(feeds, func(f *domain.Feed, _ int) feedResponse {
		return toFeedResponse(f)
	}))
}

// createFeedHandler subscribes to a new feed
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   int64  `json:"account_id"`
		URL         string `json:"url"`
		Title       string `json:"title"`
		Group       string `json:"group"`
		Notify      bool   `json:"notify"`
		FullContent bool   `json:"full_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.AccountID == 0 {
		renderError(w, r, errors.New("url and account_id required"), http.StatusBadRequest)
		return
	}

	groupName := req.Group
	if groupName == "" {
		groupName = opml.DefaultGroupName
	}
	group, err := s.store.EnsureGroup(r.Context(), req.AccountID, groupName)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to ensure group: %w", err), http.StatusInternalServerError)
		return
	}

	feed := &domain.Feed{
		AccountID:   req.AccountID,
		GroupID:     group.ID,
		URL:         req.URL,
		Title:       req.Title,
		Notify:      req.Notify,
		FullContent: req.FullContent,
	}
	if err := s.store.CreateFeed(r.Context(), feed); err != nil {
		renderError(w, r, fmt.Errorf("failed to create feed: %w", err), http.StatusConflict)
		return
	}

	renderJSON(w, r, http.StatusCreated, toFeedResponse(feed))
}

// deleteFeedHandler removes a subscription with its articles
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteFeed(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, fmt.Errorf("failed to delete feed: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// feedFlagsHandler updates the per-feed notify and full-content toggles
func (s *Server) feedFlagsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Notify      bool `json:"notify"`
		FullContent bool `json:"full_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	if err := s.store.UpdateFeedFlags(r.Context(), id, req.Notify, req.FullContent); err != nil {
		renderError(w, r, fmt.Errorf("failed to update flags: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// feedGroupHandler moves a feed to another group
func (s *Server) feedGroupHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		GroupID int64 `json:"group_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.GroupID == 0 {
		renderError(w, r, errors.New("group_id required"), http.StatusBadRequest)
		return
	}

	if err := s.store.UpdateFeedGroup(r.Context(), id, req.GroupID); err != nil {
		renderError(w, r, fmt.Errorf("failed to move feed: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// listArticlesHandler returns a page of articles for a feed
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > 500 {
			renderError(w, r, errors.New("limit must be between 1 and 500"), http.StatusBadRequest)
			return
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			renderError(w, r, errors.New("offset must be non-negative"), http.StatusBadRequest)
			return
		}
	}

	articles, err := s.store.GetArticles(r.Context(), id, limit, offset)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get articles: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, lo.Map(articles, func(a *domain.Article, _ int) articleResponse {
		return toArticleResponse(a)
	}))
}

// listGroupsHandler returns groups for an account
func (s *Server) listGroupsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryInt64(r, "account_id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	groups, err := s.store.GetGroups(r.Context(), accountID)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get groups: %w", err), http.StatusInternalServerError)
		return
	}

	type groupResponse struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	renderJSON(w, r, http.StatusOK, lo.Map(groups, func(g *domain.Group, _ int) groupResponse {
		return groupResponse{ID: g.ID, Name: g.Name}
	}))
}

// articleReadHandler sets or clears the read flag
func (s *Server) articleReadHandler(w http.ResponseWriter, r *http.Request) {
	s.articleFlagHandler(w, r, s.store.SetRead)
}

// articleStarHandler sets or clears the starred flag
func (s *Server) articleStarHandler(w http.ResponseWriter, r *http.Request) {
	s.articleFlagHandler(w, r, s.store.SetStarred)
}

func (s *Server) articleFlagHandler(w http.ResponseWriter, r *http.Request, update func(ctx context.Context, articleID int64, value bool) error) {
	id, err := pathInt64(r, "id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	if err := update(r.Context(), id, req.Value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, fmt.Errorf("failed to update article: %w", err), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// opmlImportHandler imports a subscription list, all-or-nothing
func (s *Server) opmlImportHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryInt64(r, "account_id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	overwrite := r.URL.Query().Get("overwrite") == "true"

	data, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to read body: %w", err), http.StatusBadRequest)
		return
	}

	stats, err := s.importer.Import(r.Context(), accountID, data, overwrite)
	if err != nil {
		if errors.Is(err, opml.ErrMalformedSubscriptionList) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		renderError(w, r, fmt.Errorf("import failed: %w", err), http.StatusInternalServerError)
		return
	}

	resp := struct {
		GroupsCreated int `json:"groups_created"`
		FeedsCreated  int `json:"feeds_created"`
		FeedsMoved    int `json:"feeds_moved"`
		Skipped       int `json:"skipped"`
	}{stats.GroupsCreated, stats.FeedsCreated, stats.FeedsMoved, stats.Skipped}
	renderJSON(w, r, http.StatusOK, resp)
}

// opmlExportHandler exports all subscriptions of an account as OPML
func (s *Server) opmlExportHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryInt64(r, "account_id")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	groups, err := s.store.GetGroups(r.Context(), accountID)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get groups: %w", err), http.StatusInternalServerError)
		return
	}
	feeds, err := s.store.GetFeeds(r.Context(), accountID)
	if err != nil {
		renderError(w, r, fmt.Errorf("failed to get feeds: %w", err), http.StatusInternalServerError)
		return
	}

	byGroup := lo.GroupBy(feeds, func(f *domain.Feed) int64 { return f.GroupID })
	export := make([]opml.GroupExport, 0, len(groups))
	for _, g := range groups {
		members, ok := byGroup[g.ID]
		if !ok {
			continue // empty groups are not exported
		}
		export = append(export, opml.GroupExport{
			Name: g.Name,
			Feeds: lo.Map(members, func(f *domain.Feed, _ int) opml.Entry {
				return opml.Entry{Group: g.Name, Title: f.Title, XMLURL: f.URL, HTMLURL: f.SiteURL}
			}),
		})
	}

	data, err := opml.Export("feedsync subscriptions", export)
	if err != nil {
		renderError(w, r, fmt.Errorf("export failed: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="subscriptions.opml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[ERROR] can't write opml response: %v", err)
	}
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter required", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
