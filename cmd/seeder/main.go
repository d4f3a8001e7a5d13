package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/persearch"
	"github.com/poiesic/persearch/ingestion"
)

// pages is a small demo corpus covering the kind of department pages the
// crawler produces, used when no feed file is supplied.
var pages = []ingestion.CrawlRecord{
	{
		URL:          "https://example.edu/cs/intro-databases",
		Title:        "Introduction to Database Systems",
		Keywords:     []string{"databases", "sql", "relational model"},
		Description:  "Course page for the introductory database systems module.",
		HTMLFilename: "intro-databases.html",
		Content:      "The relational model, SQL, transactions, and query optimization.",
		PageRank:     0.82,
	},
	{
		URL:          "https://example.edu/cs/operating-systems",
		Title:        "Operating Systems",
		Keywords:     []string{"operating systems", "scheduling", "memory management"},
		Description:  "Processes, threads, scheduling, virtual memory, and file systems.",
		HTMLFilename: "operating-systems.html",
		Content:      "Concurrency primitives, deadlock avoidance, and paging strategies.",
		PageRank:     0.77,
	},
	{
		URL:          "https://example.edu/cs/computer-networks",
		Title:        "Computer Networks",
		Keywords:     []string{"networking", "tcp", "routing"},
		Description:  "From physical links to application protocols.",
		HTMLFilename: "computer-networks.html",
		Content:      "Layered architectures, reliable transport, congestion control, DNS.",
		PageRank:     0.71,
	},
	{
		URL:          "https://example.edu/cs/machine-learning",
		Title:        "Machine Learning",
		Keywords:     []string{"machine learning", "neural networks", "statistics"},
		Description:  "Supervised and unsupervised learning methods.",
		HTMLFilename: "machine-learning.html",
		Content:      "Regression, classification, clustering, and model evaluation.",
		PageRank:     0.88,
	},
	{
		URL:          "https://example.edu/cs/algorithms",
		Title:        "Algorithms and Data Structures",
		Keywords:     []string{"algorithms", "data structures", "complexity"},
		Description:  "Design and analysis of efficient algorithms.",
		HTMLFilename: "algorithms.html",
		Content:      "Sorting, searching, graph algorithms, dynamic programming.",
		PageRank:     0.9,
	},
	{
		URL:          "https://example.edu/cs/distributed-systems",
		Title:        "Distributed Systems",
		Keywords:     []string{"distributed systems", "consensus", "replication"},
		Description:  "Building reliable systems from unreliable parts.",
		HTMLFilename: "distributed-systems.html",
		Content:      "Consistency models, consensus protocols, fault tolerance.",
		PageRank:     0.69,
	},
	{
		URL:          "https://example.edu/cs/information-retrieval",
		Title:        "Information Retrieval",
		Keywords:     []string{"search", "indexing", "ranking"},
		Description:  "How search engines index and rank documents.",
		HTMLFilename: "information-retrieval.html",
		Content:      "Inverted indexes, tf-idf, link analysis, and result ranking.",
		PageRank:     0.74,
	},
	{
		URL:          "https://example.edu/cs/compilers",
		Title:        "Compiler Construction",
		Keywords:     []string{"compilers", "parsing", "code generation"},
		Description:  "From source text to executable code.",
		HTMLFilename: "compilers.html",
		Content:      "Lexing, parsing, semantic analysis, optimization, code generation.",
		PageRank:     0.63,
	},
	{
		URL:          "https://example.edu/cs/security",
		Title:        "Computer Security",
		Keywords:     []string{"security", "cryptography", "authentication"},
		Description:  "Threat models and defensive techniques.",
		HTMLFilename: "security.html",
		Content:      "Symmetric and public-key cryptography, access control, auditing.",
		PageRank:     0.67,
	},
	{
		URL:          "https://example.edu/cs/software-engineering",
		Title:        "Software Engineering",
		Keywords:     []string{"software engineering", "testing", "design"},
		Description:  "Practices for building software in teams.",
		HTMLFilename: "software-engineering.html",
		Content:      "Requirements, version control, testing strategies, code review.",
		PageRank:     0.6,
	},
}

var (
	seedFileName = flag.String("src", "", "JSON crawl feed to load instead of the demo corpus")
	dbPath       = flag.String("db", "./session_db", "path to the session database")
	esURL        = flag.String("es", "http://localhost:9200", "search index base URL")
	indexName    = flag.String("index", persearch.DefaultIndex, "index name to seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	client, err := persearch.NewClient(context.Background(), *dbPath, *esURL,
		persearch.WithIndex(*indexName))
	if err != nil {
		panic(err)
	}
	defer client.Close()

	pipeline, err := client.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	if err := pipeline.EnsureIndex(ctx); err != nil {
		panic(err)
	}

	var report *ingestion.Report
	if *seedFileName != "" {
		report, err = pipeline.IndexFeed(ctx, *seedFileName)
	} else {
		report, err = pipeline.IndexRecords(ctx, pages)
	}
	if err != nil {
		panic(err)
	}

	slog.Info("seeding complete", "indexed", report.Indexed, "failed", report.Failed)
}
