package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognitus/cognitus/internal/output"
	"github.com/cognitus/cognitus/internal/services/clipboard"
	"github.com/cognitus/cognitus/internal/types"
	"github.com/cognitus/cognitus/internal/wiki"
)

const (
	wikiUse              = "wiki <terms...>"
	wikiAlias            = "w"
	wikiShortDescription = "look up terms on Wikipedia (" + wikiAlias + ")"

	// wikiLongDescription provides detailed help for the wiki command.
	wikiLongDescription = `Search Wikipedia for each term and print a short extract of the best
matching article. Use --lookup=false to list the search matches instead
of fetching extracts. Terms are fetched concurrently and reported in the
order given.`
	// wikiUsageExample demonstrates wiki command usage.
	wikiUsageExample = `  # Summarize two terms
  cognitus wiki "Go (programming language)" "Rob Pike"

  # Show search matches without fetching extracts
  cognitus wiki generics --lookup=false --results 10`

	resultsFlagName   = "results"
	sentencesFlagName = "sentences"
	lookupFlagName    = "lookup"
	timeoutFlagName   = "timeout"

	resultsFlagDescription   = "maximum search matches per term"
	sentencesFlagDescription = "extract length in sentences"
	lookupFlagDescription    = "fetch article extracts for the best match"
	timeoutFlagDescription   = "request timeout in seconds"

	defaultResultLimit    = 5
	defaultSentenceCount  = 3
	defaultTimeoutSeconds = 10
)

// createWikiCommand returns the wiki subcommand.
func createWikiCommand(applicationLogger *zap.Logger, configurationPath *string) *cobra.Command {
	var resultLimit int
	var sentenceCount int
	var lookupEnabled bool
	var timeoutSeconds int
	var copyEnabled bool

	wikiCommand := &cobra.Command{
		Use:     wikiUse,
		Aliases: []string{wikiAlias},
		Short:   wikiShortDescription,
		Long:    wikiLongDescription,
		Example: wikiUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadApplicationConfiguration(*configurationPath)
			if configurationError != nil {
				return configurationError
			}
			wikiConfiguration := applicationConfiguration.Wiki

			return runWikiCommand(wikiCommandOptions{
				Terms:          arguments,
				ResultLimit:    resolveIntSetting(command, resultsFlagName, resultLimit, wikiConfiguration.Results),
				Sentences:      resolveIntSetting(command, sentencesFlagName, sentenceCount, wikiConfiguration.Sentences),
				LookupEnabled:  resolveBoolSetting(command, lookupFlagName, lookupEnabled, wikiConfiguration.Lookup),
				TimeoutSeconds: resolveIntSetting(command, timeoutFlagName, timeoutSeconds, wikiConfiguration.TimeoutSeconds),
				CopyEnabled:    resolveBoolSetting(command, copyFlagName, copyEnabled, wikiConfiguration.Clipboard),
				Clipboard:      clipboard.NewService(),
				Writer:         command.OutOrStdout(),
				Logger:         applicationLogger,
			})
		},
	}

	wikiCommand.Flags().IntVar(&resultLimit, resultsFlagName, defaultResultLimit, resultsFlagDescription)
	wikiCommand.Flags().IntVar(&sentenceCount, sentencesFlagName, defaultSentenceCount, sentencesFlagDescription)
	registerBooleanFlag(wikiCommand.Flags(), &lookupEnabled, lookupFlagName, true, lookupFlagDescription)
	wikiCommand.Flags().IntVar(&timeoutSeconds, timeoutFlagName, defaultTimeoutSeconds, timeoutFlagDescription)
	registerCopyFlag(wikiCommand.Flags(), &copyEnabled)
	return wikiCommand
}

// wikiCommandOptions carries the resolved settings for one wiki run.
type wikiCommandOptions struct {
	Terms          []string
	ResultLimit    int
	Sentences      int
	LookupEnabled  bool
	TimeoutSeconds int
	BaseURL        string
	HTTPClient     *http.Client
	CopyEnabled    bool
	Clipboard      clipboard.Copier
	Writer         io.Writer
	Logger         *zap.Logger
}

// runWikiCommand resolves each term against Wikipedia and renders either
// article extracts or raw search matches.
func runWikiCommand(options wikiCommandOptions) error {
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	httpClient := options.HTTPClient
	if httpClient == nil && options.TimeoutSeconds > 0 {
		httpClient = &http.Client{Timeout: time.Duration(options.TimeoutSeconds) * time.Second}
	}
	client := wiki.NewClient(options.BaseURL, httpClient, options.Logger)

	var rendered string
	if options.LookupEnabled {
		summaries, lookupError := client.SearchMany(context.Background(), options.Terms, options.Sentences)
		if lookupError != nil {
			return lookupError
		}
		rendered = output.RenderArticleSummariesRaw(articleSummariesFromTerms(summaries))
	} else {
		searches, searchError := searchTerms(context.Background(), client, options.Terms, options.ResultLimit)
		if searchError != nil {
			return searchError
		}
		rendered = output.RenderArticleSearchesRaw(searches)
	}

	return writeRendered(outputWriter, rendered, options.CopyEnabled, options.Clipboard)
}

// searchTerms runs one search per term concurrently and keeps results in the
// input order. The first failure cancels the remaining searches.
func searchTerms(requestContext context.Context, client *wiki.Client, terms []string, resultLimit int) ([]types.ArticleSearch, error) {
	searches := make([]types.ArticleSearch, len(terms))
	group, groupContext := errgroup.WithContext(requestContext)
	for termIndex, term := range terms {
		termIndex, term := termIndex, term
		group.Go(func() error {
			results, searchError := client.Search(groupContext, term, resultLimit)
			if searchError != nil {
				return searchError
			}
			matches := make([]types.ArticleMatch, 0, len(results))
			for _, result := range results {
				matches = append(matches, types.ArticleMatch{Title: result.Title, Snippet: result.Snippet})
			}
			searches[termIndex] = types.ArticleSearch{Term: term, Matches: matches}
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return searches, nil
}

// articleSummariesFromTerms converts client summaries into report rows.
func articleSummariesFromTerms(summaries []wiki.TermSummary) []types.ArticleSummary {
	converted := make([]types.ArticleSummary, 0, len(summaries))
	for _, summary := range summaries {
		converted = append(converted, types.ArticleSummary{
			Term:    summary.Term,
			Title:   summary.Title,
			Extract: summary.Extract,
		})
	}
	return converted
}
