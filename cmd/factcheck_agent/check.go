package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/factcheck-agent/internal/extract"
	"github.com/jonathan/factcheck-agent/internal/observability"
	"github.com/jonathan/factcheck-agent/internal/provider"
	"github.com/jonathan/factcheck-agent/internal/report"
	"github.com/jonathan/factcheck-agent/internal/types"
)

var (
	checkClaim      string
	checkURL        string
	checkConfigPath string
	checkReportPath string
	checkBrowser    bool
	checkVerbose    bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fact-check a claim or article URL from the command line",
	Long:  `Run a one-shot fact check against the configured providers and print the verdict. Optionally write a PDF report.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkClaim, "claim", "", "Free-text claim to verify")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "Article URL to extract and verify")
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to JSON config file")
	checkCmd.Flags().StringVar(&checkReportPath, "report", "", "Write a PDF report to this path")
	checkCmd.Flags().BoolVar(&checkBrowser, "browser", false, "Render the article page in a headless browser")
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false, "Print detailed progress information")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	req := types.FactCheckRequest{Claim: checkClaim, URL: checkURL}
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := buildConfig(checkConfigPath)
	if err != nil {
		return err
	}
	if checkBrowser {
		cfg.UseBrowser = true
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)

	content := req.Claim
	var reqCtx provider.ReqContext

	if req.URL != "" {
		opts := extract.DefaultOptions()
		opts.Timeout = cfg.FetchTimeout()
		opts.UseBrowser = cfg.UseBrowser

		article, err := extract.Article(ctx, req.URL, opts)
		if err != nil {
			return err
		}
		if checkVerbose {
			printer.PrintExtractedArticle(article)
		}
		content = article.Content
		reqCtx = provider.ReqContext{SourceURL: req.URL, ArticleTitle: article.Title}
	}

	gateway := provider.NewGateway(cfg)
	result, err := gateway.Check(ctx, content, reqCtx)
	if err != nil {
		return err
	}

	printer.PrintResult(result)

	if checkReportPath != "" {
		claim := req.Claim
		if claim == "" {
			claim = req.URL
		}
		pdf, err := report.Generate(&report.Data{
			Claim:        claim,
			Verdict:      result.Verdict,
			Explanation:  result.Explanation,
			Sources:      result.Sources,
			ArticleTitle: result.ArticleTitle,
		})
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		if err := os.WriteFile(checkReportPath, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", checkReportPath)
	}
	return nil
}
