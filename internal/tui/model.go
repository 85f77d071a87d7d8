package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llovera/newsdeck/internal/news"
	"github.com/llovera/newsdeck/internal/reconcile"
	"github.com/llovera/newsdeck/internal/render/speech"
	"github.com/llovera/newsdeck/internal/store"
	"github.com/llovera/newsdeck/internal/tui/actions"
	"github.com/llovera/newsdeck/internal/tui/platform"
	tuistate "github.com/llovera/newsdeck/internal/tui/state"
	tuitheme "github.com/llovera/newsdeck/internal/tui/theme"
	"github.com/llovera/newsdeck/internal/tui/view"
)

// Service is everything the model needs from the app layer.
type Service interface {
	actions.Service
	Settings() store.Settings
	Published() []news.Article
	UpdateSettings(ctx context.Context, patch store.SettingsPatch)
}

type inputKind int

const (
	inputNone inputKind = iota
	inputSearch
	inputHighlight
	inputNote
	inputPassword
	inputPublishTitle
	inputPublishContent
	inputCustomTag
	inputAuthorName
	inputAuthorBio
	inputAuthorAvatar
)

type Model struct {
	service Service

	feed     actions.Feed
	articles []news.Article
	cursor   int

	width  int
	height int

	loading bool
	status  string
	warning string

	inDetail  bool
	detailTop int
	speechOn  bool

	sort         reconcile.SortMode
	selectedTags map[string]struct{}

	filterOpen    bool
	filterCursor  int
	availableTags []news.Tag

	input       inputKind
	inputValue  string
	searchQuery string

	draftTitle   string
	draftContent string
	draftTags    map[string]struct{}
	tagPickOpen  bool
	tagPickCur   int
	tagOptions   []news.Tag

	authorName string
	authorBio  string

	settings store.Settings
	theme    tuitheme.Theme

	openURLFn func(string) error
	copyFn    func(string) error
}

func NewModel(service Service) Model {
	settings := service.Settings()
	return Model{
		service:      service,
		feed:         actions.FeedDashboard,
		sort:         reconcile.SortBest,
		selectedTags: map[string]struct{}{},
		settings:     settings,
		theme:        tuitheme.FromSettings(settings),
		loading:      true,
		openURLFn:    platform.OpenInBrowser,
		copyFn:       platform.CopyToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case actions.FeedLoadedMsg:
		if msg.Feed != m.feed {
			return m, nil
		}
		m.loading = false
		m.articles = msg.Articles
		m.warning = msg.Warning
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.articles))
		if msg.Duration > 0 {
			m.status = fmt.Sprintf("Loaded %d articles in %s", len(m.articles), msg.Duration.Round(time.Millisecond))
		}
		return m, nil

	case actions.FeedErrorMsg:
		m.loading = false
		m.warning = msg.Err.Error()
		return m, nil

	case actions.ToggleSavedMsg:
		m.status = msg.Status
		if m.feed == actions.FeedSaved {
			return m, actions.LoadSavedCmd(m.service)
		}
		return m, nil

	case actions.ToggleLikedMsg:
		m.status = msg.Status
		return m, nil

	case actions.AnnotationAddedMsg:
		if m.refreshArticleFromStore(msg.ArticleID) {
			m.status = msg.Status
		} else {
			m.warning = "Save or publish the article to keep annotations"
		}
		return m, nil

	case actions.ArticlePublishedMsg:
		if msg.Err != nil {
			m.warning = msg.Err.Error()
			return m, nil
		}
		m.status = "Published article"
		m.draftTitle = ""
		m.draftContent = ""
		m.draftTags = nil
		m.loading = true
		return m, m.refreshCmd()

	case actions.ArticleDeletedMsg:
		m.status = msg.Status
		m.removeArticle(msg.ArticleID)
		return m, nil

	case actions.AuthorUpdatedMsg:
		m.status = msg.Status
		m.settings = m.service.Settings()
		return m, nil

	case actions.UnlockResultMsg:
		if msg.Err != nil {
			m.warning = msg.Err.Error()
			return m, nil
		}
		m.settings = m.service.Settings()
		m.theme = tuitheme.FromSettings(m.settings)
		m.status = "Developer mode enabled"
		return m, nil

	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		return m, nil

	case actions.OpenURLErrorMsg:
		m.warning = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInputKey(msg)
	}
	if m.tagPickOpen {
		return m.handleTagPickKey(msg)
	}
	if m.filterOpen {
		return m.handleFilterKey(msg)
	}
	if m.inDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.input = inputNone
		m.inputValue = ""
		return m, nil
	case tea.KeyEnter:
		return m.commitInput()
	case tea.KeyBackspace:
		if m.inputValue != "" {
			runes := []rune(m.inputValue)
			m.inputValue = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.inputValue += " "
		return m, nil
	case tea.KeyRunes:
		m.inputValue += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	kind := m.input
	value := m.inputValue
	m.input = inputNone
	m.inputValue = ""

	switch kind {
	case inputSearch:
		m.searchQuery = value
		m.feed = actions.FeedSearch
		m.loading = true
		m.cursor = 0
		m.inDetail = false
		return m, actions.LoadSearchCmd(m.service, m.searchQuery)
	case inputHighlight:
		if article, ok := m.currentArticle(); ok && strings.TrimSpace(value) != "" {
			return m, actions.AddHighlightCmd(m.service, article.ID, value)
		}
	case inputNote:
		if article, ok := m.currentArticle(); ok && strings.TrimSpace(value) != "" {
			return m, actions.AddNoteCmd(m.service, article.ID, value)
		}
	case inputPassword:
		return m, actions.UnlockCmd(m.service, value)
	case inputPublishTitle:
		if strings.TrimSpace(value) == "" {
			m.warning = "A published article needs a title"
			return m, nil
		}
		m.draftTitle = value
		m.input = inputPublishContent
	case inputPublishContent:
		m.draftContent = value
		m.tagOptions = news.DefaultTags()
		m.draftTags = map[string]struct{}{}
		m.tagPickCur = 0
		m.tagPickOpen = true
	case inputCustomTag:
		m.tagPickOpen = true
		if name := strings.TrimSpace(value); name != "" {
			tag := news.NewCustomTag(name, m.settings.AccentColor)
			if !containsTagID(m.tagOptions, tag.ID) {
				m.tagOptions = append(m.tagOptions, tag)
			}
			m.draftTags[tag.ID] = struct{}{}
		}
	case inputAuthorName:
		m.authorName = value
		m.input = inputAuthorBio
		m.inputValue = m.settings.AuthorBio
	case inputAuthorBio:
		m.authorBio = value
		m.input = inputAuthorAvatar
		m.inputValue = m.settings.AuthorAvatar
	case inputAuthorAvatar:
		return m, actions.UpdateAuthorCmd(m.service, m.authorName, m.authorBio, value)
	}
	return m, nil
}

func (m Model) handleTagPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.tagPickCur = tuistate.ClampCursor(m.tagPickCur+1, len(m.tagOptions))
	case "k", "up":
		m.tagPickCur = tuistate.ClampCursor(m.tagPickCur-1, len(m.tagOptions))
	case " ":
		if m.tagPickCur < len(m.tagOptions) {
			id := m.tagOptions[m.tagPickCur].ID
			if _, on := m.draftTags[id]; on {
				delete(m.draftTags, id)
			} else {
				m.draftTags[id] = struct{}{}
			}
		}
	case "c":
		m.tagPickOpen = false
		m.input = inputCustomTag
	case "enter":
		m.tagPickOpen = false
		return m, actions.PublishArticleCmd(m.service, m.buildDraft())
	case "esc":
		m.tagPickOpen = false
		m.draftTitle = ""
		m.draftContent = ""
		m.draftTags = nil
	}
	return m, nil
}

func (m Model) buildDraft() news.Article {
	tags := []news.Tag{}
	for _, tag := range m.tagOptions {
		if _, on := m.draftTags[tag.ID]; on {
			tags = append(tags, tag)
		}
	}
	return news.Article{
		Title:      m.draftTitle,
		Content:    m.draftContent,
		Tags:       tags,
		Highlights: []string{},
		Notes:      []string{},
	}
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.filterCursor = tuistate.ClampCursor(m.filterCursor+1, len(m.availableTags))
	case "k", "up":
		m.filterCursor = tuistate.ClampCursor(m.filterCursor-1, len(m.availableTags))
	case " ":
		if m.filterCursor < len(m.availableTags) {
			id := m.availableTags[m.filterCursor].ID
			if _, on := m.selectedTags[id]; on {
				delete(m.selectedTags, id)
			} else {
				m.selectedTags[id] = struct{}{}
			}
		}
	case "enter", "esc", "t":
		m.filterOpen = false
		m.loading = true
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	article, ok := m.currentArticle()
	if !ok {
		m.inDetail = false
		return m, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		m.inDetail = false
		m.detailTop = 0
		m.speechOn = false
	case "j", "down":
		m.detailTop++
	case "k", "up":
		if m.detailTop > 0 {
			m.detailTop--
		}
	case "g":
		m.detailTop = 0
	case "s":
		return m, actions.ToggleSavedCmd(m.service, article)
	case "l":
		return m, actions.ToggleLikedCmd(m.service, article.ID)
	case "H":
		m.input = inputHighlight
	case "N":
		m.input = inputNote
	case "V":
		m.speechOn = !m.speechOn
	case "o":
		url, err := platform.ValidateArticleURL(article.URL)
		if err != nil {
			m.warning = err.Error()
			return m, nil
		}
		return m, actions.OpenURLCmd(url, m.openURLFn, m.copyFn)
	case "y":
		url, err := platform.ValidateArticleURL(article.URL)
		if err != nil {
			m.warning = err.Error()
			return m, nil
		}
		return m, actions.CopyURLCmd(url, m.copyFn)
	case "x":
		if m.settings.IsDeveloper && article.AuthorID != "" {
			m.inDetail = false
			return m, actions.DeleteArticleCmd(m.service, article.ID)
		}
		m.warning = "Only your own published articles can be deleted in developer mode"
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		return m.switchFeed(actions.FeedDashboard)
	case "2":
		return m.switchFeed(actions.FeedSearch)
	case "3":
		return m.switchFeed(actions.FeedSaved)
	case "4":
		return m.switchFeed(actions.FeedPopular)
	case "j", "down":
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.articles))
	case "k", "up":
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.articles))
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = tuistate.ClampCursor(len(m.articles)-1, len(m.articles))
	case "pgdown":
		m.cursor = tuistate.ClampCursor(m.cursor+tuistate.PageStep(m.height), len(m.articles))
	case "pgup":
		m.cursor = tuistate.ClampCursor(m.cursor-tuistate.PageStep(m.height), len(m.articles))
	case "enter":
		if _, ok := m.currentArticle(); ok {
			m.inDetail = true
			m.detailTop = 0
		}
	case "r":
		m.loading = true
		return m, m.refreshCmd()
	case "s":
		if article, ok := m.currentArticle(); ok {
			return m, actions.ToggleSavedCmd(m.service, article)
		}
	case "l":
		if article, ok := m.currentArticle(); ok {
			return m, actions.ToggleLikedCmd(m.service, article.ID)
		}
	case "o":
		if m.feed == actions.FeedDashboard {
			m.sort = nextSort(m.sort)
			m.loading = true
			return m, m.refreshCmd()
		}
	case "t":
		if m.feed == actions.FeedDashboard {
			m.availableTags = collectTags(m.articles)
			m.filterCursor = 0
			m.filterOpen = true
		}
	case "T":
		return m.toggleTheme()
	case "/":
		m.input = inputSearch
		m.inputValue = m.searchQuery
	case "D":
		m.input = inputPassword
	case "P":
		if m.settings.IsDeveloper {
			m.draftTitle = ""
			m.draftContent = ""
			m.draftTags = map[string]struct{}{}
			m.input = inputPublishTitle
		}
	case "A":
		if m.settings.IsDeveloper {
			m.input = inputAuthorName
			m.inputValue = m.settings.AuthorName
		}
	}
	return m, nil
}

func (m Model) switchFeed(feed actions.Feed) (tea.Model, tea.Cmd) {
	m.feed = feed
	m.cursor = 0
	m.inDetail = false
	m.loading = true
	m.status = ""
	m.warning = ""
	return m, m.refreshCmd()
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := store.ThemeDark
	if m.settings.Theme == store.ThemeDark {
		next = store.ThemeLight
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Re-assert the privileged flag so a cosmetic change does not drop it.
	m.service.UpdateSettings(ctx, store.SettingsPatch{Theme: &next, IsDeveloper: m.settings.IsDeveloper})

	m.settings = m.service.Settings()
	m.theme = tuitheme.FromSettings(m.settings)
	m.status = "Theme: " + string(m.settings.Theme)
	return m, nil
}

func (m Model) refreshCmd() tea.Cmd {
	switch m.feed {
	case actions.FeedSearch:
		return actions.LoadSearchCmd(m.service, m.searchQuery)
	case actions.FeedSaved:
		return actions.LoadSavedCmd(m.service)
	case actions.FeedPopular:
		return actions.LoadPopularCmd(m.service)
	default:
		return actions.LoadDashboardCmd(m.service, m.sort, m.selectedTagIDs())
	}
}

func (m Model) currentArticle() (news.Article, bool) {
	if len(m.articles) == 0 {
		return news.Article{}, false
	}
	return m.articles[tuistate.ClampCursor(m.cursor, len(m.articles))], true
}

func (m *Model) refreshArticleFromStore(articleID string) bool {
	for _, collection := range [][]news.Article{m.service.Saved(), m.service.Published()} {
		if i := tuistate.ArticleIndexByID(collection, articleID); i >= 0 {
			if j := tuistate.ArticleIndexByID(m.articles, articleID); j >= 0 {
				m.articles[j] = collection[i]
			}
			return true
		}
	}
	return false
}

func (m *Model) removeArticle(articleID string) {
	if i := tuistate.ArticleIndexByID(m.articles, articleID); i >= 0 {
		m.articles = append(m.articles[:i], m.articles[i+1:]...)
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.articles))
	}
}

func (m Model) selectedTagIDs() []string {
	out := make([]string, 0, len(m.selectedTags))
	for _, tag := range m.availableTags {
		if _, on := m.selectedTags[tag.ID]; on {
			out = append(out, tag.ID)
		}
	}
	// Selected ids whose tag is no longer offered still apply.
	for id := range m.selectedTags {
		if !containsTagID(m.availableTags, id) && !containsString(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func nextSort(mode reconcile.SortMode) reconcile.SortMode {
	switch mode {
	case reconcile.SortBest:
		return reconcile.SortRecent
	case reconcile.SortRecent:
		return reconcile.SortOldest
	default:
		return reconcile.SortBest
	}
}

func collectTags(articles []news.Article) []news.Tag {
	seen := map[string]struct{}{}
	out := []news.Tag{}
	for _, a := range articles {
		for _, tag := range a.Tags {
			if _, dup := seen[tag.ID]; dup {
				continue
			}
			seen[tag.ID] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func containsTagID(tags []news.Tag, id string) bool {
	for _, tag := range tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("newsdeck") + " " + m.theme.FeedPill.Render(string(m.feed)) + "\n")
	b.WriteString(view.Message(m.loading, m.status, m.warning, m.theme) + "\n\n")

	switch {
	case m.inDetail:
		b.WriteString(m.detailView())
	case m.tagPickOpen:
		b.WriteString(m.tagPickView())
	case m.filterOpen:
		b.WriteString(m.filterView())
	default:
		b.WriteString(m.listView())
	}

	if m.input != inputNone {
		b.WriteString("\n" + m.inputPrompt() + m.inputValue + "▌\n")
	}

	b.WriteString("\n" + view.Toolbar(m.inDetail, m.settings.IsDeveloper))
	return b.String()
}

func (m Model) inputPrompt() string {
	switch m.input {
	case inputSearch:
		return "search: "
	case inputHighlight:
		return "highlight: "
	case inputNote:
		return "note: "
	case inputPassword:
		return "developer password: "
	case inputPublishTitle:
		return "title: "
	case inputPublishContent:
		return "content: "
	case inputCustomTag:
		return "new tag name: "
	case inputAuthorName:
		return "author name: "
	case inputAuthorBio:
		return "author bio: "
	case inputAuthorAvatar:
		return "avatar url: "
	}
	return ""
}

func (m Model) listView() string {
	if len(m.articles) == 0 {
		if m.loading {
			return "Loading articles...\n"
		}
		return "No articles. Press r to refresh.\n"
	}

	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	start, end := tuistate.CenteredWindow(len(m.articles), m.cursor, listHeight)

	var b strings.Builder
	for i := start; i < end; i++ {
		a := m.articles[i]
		b.WriteString(view.RenderArticleLine(view.ArticleLineParams{
			Article:  a,
			Active:   i == m.cursor,
			Saved:    m.service.IsSaved(a.ID),
			Liked:    m.service.IsLiked(a.ID),
			Authored: a.AuthorID != "",
			Width:    m.width,
		}, m.theme) + "\n")
	}

	sortLabel := ""
	if m.feed == actions.FeedDashboard {
		sortLabel = string(m.sort)
	}
	query := ""
	if m.feed == actions.FeedSearch {
		query = m.searchQuery
	}
	b.WriteString("\n" + view.Footer(string(m.feed), sortLabel, len(m.selectedTags), len(m.articles), query, m.theme))
	return b.String()
}

func (m Model) filterView() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("Filter by tag") + "\n")
	if len(m.availableTags) == 0 {
		b.WriteString("No tags on published articles yet.\n")
		return b.String()
	}
	for i, tag := range m.availableTags {
		cursor := " "
		if i == m.filterCursor {
			cursor = ">"
		}
		check := "[ ]"
		if _, on := m.selectedTags[tag.ID]; on {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, check, m.theme.TagBadge(tag.Color, tag.Name)))
	}
	b.WriteString("\nspace toggle | enter apply\n")
	return b.String()
}

func (m Model) tagPickView() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("Tags for \""+m.draftTitle+"\"") + "\n")
	for i, tag := range m.tagOptions {
		cursor := " "
		if i == m.tagPickCur {
			cursor = ">"
		}
		check := "[ ]"
		if _, on := m.draftTags[tag.ID]; on {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, check, m.theme.TagBadge(tag.Color, tag.Name)))
	}
	b.WriteString("\nspace toggle | c custom tag | enter publish | esc discard\n")
	return b.String()
}

func (m Model) detailView() string {
	article, ok := m.currentArticle()
	if !ok {
		return "No article selected.\n"
	}

	preview := ""
	if m.speechOn {
		preview = speech.CleanForSpeech(article.Content)
	}

	content := view.RenderDetail(view.DetailParams{
		Article:       article,
		Width:         m.width,
		ShowImages:    m.settings.ShowImages,
		Saved:         m.service.IsSaved(article.ID),
		Liked:         m.service.IsLiked(article.ID),
		SpeechPreview: preview,
	}, m.theme)

	lines := strings.Split(content, "\n")
	top := m.detailTop
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	if top < 0 {
		top = 0
	}
	visible := m.height - 6
	if visible < 3 {
		visible = 3
	}
	end := top + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}
