// Command fitcheck is a terminal client for the FitCheck API. It exercises
// the same library a UI would sit on: session persistence, resource
// services, view-model transforms and the synchronization controllers.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fitcheck/internal/cache"
	"fitcheck/internal/chat"
	"fitcheck/internal/config"
	"fitcheck/internal/model"
	"fitcheck/internal/refresh"
	"fitcheck/internal/service"
	"fitcheck/internal/session"
	"fitcheck/internal/store"
	"fitcheck/internal/sync"
	"fitcheck/internal/transport"
	"fitcheck/internal/viewmodel"
)

func main() {
	var (
		cmd      = flag.String("cmd", "", "Command: signup|verify|login|logout|whoami|wardrobe|wardrobe-add|wardrobe-del|feed|browse|post|post-add|post-del|like|comment|profile|profile-update|avatar|follow|followers|following|daily|daily-add|rate|chat|chat-ai|watch")
		username = flag.String("username", "", "Username (signup)")
		email    = flag.String("email", "", "Email (signup/verify/login)")
		password = flag.String("password", "", "Password (signup/login)")
		code     = flag.String("code", "", "Verification code (verify)")
		id       = flag.String("id", "", "Resource id (post/wardrobe-del/like/comment/rate)")
		user     = flag.String("user", "", "Target username (wardrobe/profile/follow/followers/following)")
		category = flag.String("category", "", "Wardrobe or post category")
		image    = flag.String("image", "", "Path to a local image (wardrobe-add/daily-add)")
		desc     = flag.String("desc", "", "Description or caption")
		text     = flag.String("text", "", "Comment text")
		location = flag.String("location", "", "Location tag (post-add)")
		mentions = flag.String("mentions", "", "Comma separated mentions (post-add)")
		bio      = flag.String("bio", "", "Profile bio (profile-update)")
		brands   = flag.String("brands", "", "Comma separated favorite brands (profile-update)")
		styles   = flag.String("styles", "", "Comma separated style preferences (profile-update)")
		rating   = flag.Int("rating", 0, "Rating 1-5, repeat current rating to clear (rate)")
		pages    = flag.Int("pages", 1, "Feed pages to load (feed)")
		wardrobe = flag.Bool("wardrobe", true, "Let the assistant pull from your wardrobe (chat-ai)")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal(err)
	}

	kv, err := store.Open(cfg.DataDir)
	if err != nil {
		fatal(err)
	}
	defer kv.Close()

	sess := session.New(kv)
	client := transport.NewClient(cfg.APIBaseURL, sess)

	a := &app{
		session:  sess,
		auth:     service.NewAuth(client, sess),
		wardrobe: service.NewWardrobe(client, sess),
		posts:    service.NewPosts(client, sess),
		profile:  service.NewProfile(client, sess, cache.New[*model.ProfileRecord](0, 0)),
		explore:  service.NewExplore(client, sess),
		daily:    service.NewDaily(client, sess),
		fashion:  service.NewFashionChat(client, sess),
		chat:     chat.NewHub(),
	}

	ctx := context.Background()

	var runErr error
	switch *cmd {
	case "signup":
		runErr = a.signup(ctx, *username, *email, *password)
	case "verify":
		runErr = a.verify(ctx, *email, *code)
	case "login":
		runErr = a.login(ctx, *email, *password)
	case "logout":
		runErr = a.logout(ctx)
	case "whoami":
		runErr = a.whoami(ctx)
	case "wardrobe":
		runErr = a.showWardrobe(ctx, *user, *category)
	case "wardrobe-add":
		runErr = a.addWardrobeItem(ctx, *image, *category, *desc)
	case "wardrobe-del":
		runErr = a.deleteWardrobeItem(ctx, *category, *id)
	case "feed":
		runErr = a.showFeed(ctx, *category, *pages)
	case "browse":
		runErr = a.browseCategory(ctx, *category, *pages)
	case "post":
		runErr = a.showPost(ctx, *id)
	case "post-add":
		runErr = a.createPost(ctx, *image, *desc, *location, *category, *mentions)
	case "post-del":
		runErr = a.deletePost(ctx, *id)
	case "like":
		runErr = a.toggleLike(ctx, *id)
	case "comment":
		runErr = a.addComment(ctx, *id, *text)
	case "profile":
		runErr = a.showProfile(ctx, *user)
	case "profile-update":
		runErr = a.updateProfile(ctx, profileUpdate(bio, brands, styles))
	case "avatar":
		runErr = a.uploadAvatar(ctx, *image)
	case "follow":
		runErr = a.toggleFollow(ctx, *user)
	case "followers":
		runErr = a.showFollowList(ctx, *user, true)
	case "following":
		runErr = a.showFollowList(ctx, *user, false)
	case "daily":
		runErr = a.showDaily(ctx)
	case "daily-add":
		runErr = a.addDaily(ctx, *image, *desc)
	case "rate":
		runErr = a.rateDaily(ctx, *id, *rating)
	case "chat":
		runErr = a.chatWith(ctx, *user)
	case "chat-ai":
		runErr = a.askAssistant(ctx, *wardrobe)
	case "watch":
		runErr = a.watch(ctx, *category)
	default:
		fmt.Println("Unknown command; see -cmd for the list")
		os.Exit(1)
	}

	if runErr != nil {
		fatal(runErr)
	}
}

func fatal(err error) {
	if err == model.ErrNotAuthenticated {
		fmt.Println("Please log in first: fitcheck -cmd login -email ... -password ...")
	} else {
		fmt.Println("Error:", err)
	}
	os.Exit(1)
}

type app struct {
	session  *session.Store
	auth     *service.Auth
	wardrobe *service.Wardrobe
	posts    *service.Posts
	profile  *service.Profile
	explore  *service.Explore
	daily    *service.Daily
	fashion  *service.FashionChat
	chat     *chat.Hub
}

func (a *app) signup(ctx context.Context, username, email, password string) error {
	if err := a.auth.Signup(ctx, username, email, password); err != nil {
		return err
	}
	fmt.Println("Check your email for a verification code, then run -cmd verify")
	return nil
}

func (a *app) verify(ctx context.Context, email, code string) error {
	user, err := a.auth.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s! You are logged in.\n", user.Username)
	return nil
}

func (a *app) login(ctx context.Context, email, password string) error {
	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("Logged in as %s\n", user.Username)
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if !a.session.IsAuthenticated(ctx) {
		fmt.Println("Not logged in")
		return nil
	}
	user, err := a.session.User(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Logged in (no stored identity)")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	return nil
}

// showWardrobe loads every category concurrently through the board, then
// prints the combined result.
func (a *app) showWardrobe(ctx context.Context, username, category string) error {
	board := sync.NewWardrobeBoard(a.wardrobe)

	categories := model.Categories
	if category != "" {
		categories = []model.Category{model.Category(category)}
	}

	if err := board.LoadAll(ctx, username, categories...); err != nil {
		return err
	}

	for _, c := range categories {
		items := board.Category(c).Items()
		if len(items) == 0 {
			continue
		}
		fmt.Printf("%s:\n", c)
		for _, item := range items {
			fmt.Printf("  %s  %s  %s\n", item.ID, item.Image, item.Description)
		}
	}
	return nil
}

func (a *app) addWardrobeItem(ctx context.Context, image, category, desc string) error {
	board := sync.NewWardrobeBoard(a.wardrobe)
	item, err := board.AddItem(ctx, image, model.Category(category), desc)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s to %s\n", item.ID, item.Category)
	return nil
}

func (a *app) deleteWardrobeItem(ctx context.Context, category, id string) error {
	board := sync.NewWardrobeBoard(a.wardrobe)
	if err := board.DeleteItem(ctx, model.Category(category), id); err != nil {
		return err
	}
	fmt.Println("Deleted", id)
	return nil
}

// showFeed drives the explore pager: page one, then load-more up to the
// requested number of pages or until the feed is exhausted.
func (a *app) showFeed(ctx context.Context, category string, pages int) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	pager := sync.NewPager(sync.DefaultPageSize, func(ctx context.Context, page, limit int) ([]viewmodel.PostView, error) {
		recs, err := a.explore.Fetch(ctx, page, limit, category)
		if err != nil {
			return nil, err
		}
		return viewmodel.Posts(recs, current), nil
	})

	if err := pager.Refresh(ctx); err != nil {
		return err
	}
	for pager.Page() < pages && pager.HasMore() {
		if err := pager.LoadMore(ctx); err != nil {
			return err
		}
	}

	posts := pager.Items()
	if len(posts) == 0 {
		fmt.Println("No posts yet. Be the first to share a fit!")
		return nil
	}
	for _, p := range posts {
		printPost(p)
	}
	if !pager.HasMore() {
		fmt.Println("-- end of feed --")
	}
	return nil
}

// browseCategory pages through a single category outside the explore feed.
func (a *app) browseCategory(ctx context.Context, category string, pages int) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	pager := sync.NewPager(sync.DefaultPageSize, func(ctx context.Context, page, limit int) ([]viewmodel.PostView, error) {
		recs, err := a.posts.ByCategory(ctx, category, page, limit)
		if err != nil {
			return nil, err
		}
		return viewmodel.Posts(recs, current), nil
	})

	if err := pager.Refresh(ctx); err != nil {
		return err
	}
	for pager.Page() < pages && pager.HasMore() {
		if err := pager.LoadMore(ctx); err != nil {
			return err
		}
	}

	for _, p := range pager.Items() {
		printPost(p)
	}
	return nil
}

func (a *app) createPost(ctx context.Context, image, caption, location, category, mentions string) error {
	input := service.CreatePostInput{
		ImagePath: image,
		Caption:   caption,
		Location:  location,
		Category:  category,
	}
	for _, m := range strings.Split(mentions, ",") {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			input.Mentions = append(input.Mentions, trimmed)
		}
	}

	rec, err := a.explore.CreatePost(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println("Posted:", rec.Key())
	return nil
}

func (a *app) showPost(ctx context.Context, id string) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	rec, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	view := viewmodel.PostFromRecord(*rec, current)
	printPost(view)
	if view.Mine {
		fmt.Println("  (your post)")
	}

	comments, err := a.posts.Comments(ctx, id, 1, 10)
	if err != nil {
		return err
	}
	for _, c := range viewmodel.Comments(comments) {
		fmt.Printf("  %s: %s\n", c.Username, c.Text)
	}

	related, err := a.posts.Related(ctx, id, 4)
	if err != nil {
		return err
	}
	if len(related) > 0 {
		fmt.Println("More like this:")
		for _, p := range viewmodel.Posts(related, current) {
			printPost(p)
		}
	}
	return nil
}

func (a *app) deletePost(ctx context.Context, id string) error {
	if err := a.posts.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Post deleted")
	return nil
}

// toggleLike runs the optimistic toggle machine: flip immediately, commit
// the server's count, roll back on failure.
func (a *app) toggleLike(ctx context.Context, id string) error {
	rec, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}

	like := sync.NewToggle(sync.LikeState{Liked: rec.IsLiked, Count: rec.Likes})
	optimistic := sync.LikeState{Liked: !rec.IsLiked, Count: rec.Likes + likeDelta(rec.IsLiked)}
	if err := like.Begin(optimistic); err != nil {
		return err
	}

	result, err := a.posts.ToggleLike(ctx, id)
	if err != nil {
		like.Rollback()
		fmt.Printf("Could not update like; still %d likes\n", like.Value().Count)
		return err
	}
	like.Commit(sync.LikeState{Liked: result.IsLiked, Count: result.Likes})

	state := like.Value()
	if state.Liked {
		fmt.Printf("Liked (%d likes)\n", state.Count)
	} else {
		fmt.Printf("Unliked (%d likes)\n", state.Count)
	}
	return nil
}

func likeDelta(liked bool) int {
	if liked {
		return -1
	}
	return 1
}

func (a *app) addComment(ctx context.Context, id, text string) error {
	c, err := a.posts.AddComment(ctx, id, text)
	if err != nil {
		return err
	}
	fmt.Println("Comment added:", c.ID)
	return nil
}

func (a *app) showProfile(ctx context.Context, username string) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	var rec *model.ProfileRecord
	if username == "" {
		rec, err = a.profile.My(ctx)
	} else {
		rec, err = a.profile.Get(ctx, username)
	}
	if err != nil {
		return err
	}

	view := viewmodel.ProfileFromRecord(*rec, current)
	fmt.Printf("@%s  %d followers  %d following  %d posts\n",
		view.Username, view.FollowersCount, view.FollowingCount, len(view.Posts))
	if view.Bio != "" {
		fmt.Println(view.Bio)
	}
	if len(view.FavoriteBrands) > 0 {
		fmt.Println("Brands:", strings.Join(view.FavoriteBrands, ", "))
	}
	for _, p := range view.TopPosts {
		printPost(p)
	}
	if view.Mine && len(view.Posts) == 0 {
		fmt.Println("No posts yet. Share your first fit!")
	}
	if !view.Mine && username != "" {
		following, err := a.profile.IsFollowing(ctx, username)
		if err != nil {
			return err
		}
		if following {
			fmt.Println("You follow this user")
		}
	}
	return nil
}

// profileUpdate builds a partial update from the flags the user actually
// set, so changing one field never blanks the others. Passing -bio "" still
// clears the bio.
func profileUpdate(bio, brands, styles *string) model.ProfileUpdateRequest {
	var req model.ProfileUpdateRequest
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bio":
			req.Bio = bio
		case "brands":
			req.FavoriteBrands = brands
		case "styles":
			req.StylePreferences = styles
		}
	})
	return req
}

func (a *app) updateProfile(ctx context.Context, req model.ProfileUpdateRequest) error {
	rec, err := a.profile.Update(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println("Profile updated for", rec.Username)
	return nil
}

func (a *app) uploadAvatar(ctx context.Context, image string) error {
	url, err := a.profile.UploadPicture(ctx, image)
	if err != nil {
		return err
	}
	fmt.Println("New profile picture:", url)
	return nil
}

func (a *app) toggleFollow(ctx context.Context, username string) error {
	following, err := a.profile.ToggleFollow(ctx, username)
	if err != nil {
		return err
	}
	if following {
		fmt.Println("Now following", username)
	} else {
		fmt.Println("Unfollowed", username)
	}
	return nil
}

func (a *app) showFollowList(ctx context.Context, username string, followers bool) error {
	if username == "" {
		user, err := a.session.User(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			return model.ErrNotAuthenticated
		}
		username = user.Username
	}

	var names []string
	var err error
	if followers {
		names, err = a.profile.Followers(ctx, username)
	} else {
		names, err = a.profile.Following(ctx, username)
	}
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("Nobody here yet")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func (a *app) showDaily(ctx context.Context) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	recs, err := a.daily.List(ctx)
	if err != nil {
		return err
	}

	views := viewmodel.DailyPosts(recs, current)
	if len(views) == 0 {
		fmt.Println("No daily fits yet")
		return nil
	}
	for _, v := range views {
		fmt.Printf("%s  @%s  %.1f stars (%d)  %s\n", v.ID, v.Username, v.AverageRating, v.TotalRatings, v.Timestamp)
		if v.Rated {
			fmt.Printf("  your rating: %d\n", v.UserRating)
		}
	}
	return nil
}

func (a *app) addDaily(ctx context.Context, image, caption string) error {
	dp, err := a.daily.Create(ctx, image, caption)
	if err != nil {
		return err
	}
	fmt.Println("Daily fit posted:", dp.ID)
	return nil
}

// rateDaily mirrors the home screen: tapping the current rating again
// clears it, and the toggle machine keeps the local value consistent with
// whatever the server settles on.
func (a *app) rateDaily(ctx context.Context, id string, stars int) error {
	recs, err := a.daily.List(ctx)
	if err != nil {
		return err
	}
	var current model.DailyPostRecord
	found := false
	for _, rec := range recs {
		if rec.ID == id {
			current = rec
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("daily post %s not found", id)
	}

	send := stars
	if current.UserRating == stars {
		send = 0
	}

	toggle := sync.NewToggle(current.UserRating)
	if err := toggle.Begin(send); err != nil {
		return err
	}

	result, err := a.daily.Rate(ctx, id, send)
	if err != nil {
		toggle.Rollback()
		fmt.Printf("Rating unchanged (%d)\n", toggle.Value())
		return err
	}
	toggle.Commit(result.UserRating)

	if toggle.Value() == 0 {
		fmt.Printf("Rating cleared. Average now %.1f (%d ratings)\n", result.AverageRating, result.TotalRatings)
	} else {
		fmt.Printf("Rated %d. Average now %.1f (%d ratings)\n", toggle.Value(), result.AverageRating, result.TotalRatings)
	}
	return nil
}

// chatWith runs an interactive conversation. Messages are session-local:
// the backend exposes no messaging persistence, so the thread disappears
// when the process exits.
func (a *app) chatWith(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("a -user to chat with is required")
	}
	me, err := a.session.User(ctx)
	if err != nil {
		return err
	}
	if me == nil {
		return model.ErrNotAuthenticated
	}

	conv := a.chat.Start(username)
	fmt.Printf("Chatting with %s (messages are not saved). Empty line to quit.\n", username)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if _, err := a.chat.Send(conv.ID, me.Username, line); err != nil {
			return err
		}
	}

	msgs, err := a.chat.Messages(conv.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Conversation ended after %d messages\n", len(msgs))
	return scanner.Err()
}

// askAssistant runs an interactive session with the fashion assistant.
// Each line is one question; replies can include outfit suggestions built
// from the wardrobe.
func (a *app) askAssistant(ctx context.Context, useWardrobe bool) error {
	fmt.Println("Fashion assistant. Ask about styling, trends or outfit ideas. Empty line to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		reply, err := a.fashion.Ask(ctx, line, useWardrobe)
		if err != nil {
			return err
		}

		fmt.Println(reply.Text)
		for _, outfit := range reply.Outfits {
			fmt.Printf("  %s: %s\n", outfit.Name, outfit.Description)
			for _, itemID := range outfit.Items {
				for _, item := range reply.WardrobeItems {
					if item.ItemID == itemID {
						fmt.Printf("    %s  %s\n", item.Category, item.ImageURL)
					}
				}
			}
		}
		if len(reply.Outfits) == 0 {
			for _, item := range reply.WardrobeItems {
				fmt.Printf("  %s  %s\n", item.Category, item.ImageURL)
			}
		}
	}
	return scanner.Err()
}

// watch keeps the explore feed and daily posts warm in the background
// until interrupted.
func (a *app) watch(ctx context.Context, category string) error {
	current, err := a.session.User(ctx)
	if err != nil {
		return err
	}

	feed := &sync.Collection[viewmodel.PostView]{}
	daily := &sync.Collection[viewmodel.DailyPostView]{}

	mgr := refresh.NewManager()
	mgr.Register(refresh.Job{
		Name:     "explore-page-1",
		Interval: time.Minute,
		Run: func(ctx context.Context) error {
			return feed.Load(ctx, func(ctx context.Context) ([]viewmodel.PostView, error) {
				recs, err := a.explore.Fetch(ctx, 1, sync.DefaultPageSize, category)
				if err != nil {
					return nil, err
				}
				return viewmodel.Posts(recs, current), nil
			})
		},
	})
	mgr.Register(refresh.Job{
		Name:     "daily-posts",
		Interval: 2 * time.Minute,
		Run: func(ctx context.Context) error {
			return daily.Load(ctx, func(ctx context.Context) ([]viewmodel.DailyPostView, error) {
				recs, err := a.daily.List(ctx)
				if err != nil {
					return nil, err
				}
				return viewmodel.DailyPosts(recs, current), nil
			})
		},
	})

	mgr.Start(ctx)
	defer mgr.Stop()

	fmt.Println("Watching for new fits; Ctrl-C to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func printPost(p viewmodel.PostView) {
	fmt.Printf("%s  @%s  %d likes  %d comments\n", p.ID, p.Username, p.Likes, p.CommentCount)
	if p.Caption != "" {
		fmt.Printf("  %s\n", p.Caption)
	}
}
