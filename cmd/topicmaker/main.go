package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const cleanupDelete = "delete"

type topicOpts struct {
	partitions        int32
	replicationFactor int16
	retention         time.Duration
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	opts := parseFlags()

	cfg := config.Load()
	if !cfg.EventsEnabled() {
		fmt.Println("events.seed_brokers is empty, nothing to do")
		os.Exit(2)
	}

	cl := createClient(cfg)
	defer cl.Close()

	printStart(cfg.Events.Topic, opts)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, opts, cfg.Events.Topic); err != nil {
		printFail(err)
		return
	}
}

func parseFlags() topicOpts {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	_ = cmdLine.String("config", "", "config file")
	partitions := cmdLine.Int32("partitions", 3, "topic partitions")
	replicationFactor := cmdLine.Int16("replication-factor", 3, "topic replication factor")
	retention := cmdLine.Duration("retention", 7*24*time.Hour, "records retention")
	_ = cmdLine.Parse(os.Args[1:])

	return topicOpts{
		partitions:        *partitions,
		replicationFactor: *replicationFactor,
		retention:         *retention,
	}
}

func createClient(cfg config.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Events.SeedBrokers...)}
	if cfg.TLSEnabled() {
		files := cfg.Events.TLS
		tlsCfg, err := adapter.MakeTLSConfig(
			files.CAFile, files.CertFile, files.KeyFile,
		)
		if err != nil {
			printFail(err)
			os.Exit(1)
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, opts topicOpts, topics ...string,
) error {
	var (
		cleanupPolicy = cleanupDelete
		minISR        = "1"
		retentionMs   = fmt.Sprint(opts.retention.Milliseconds())
	)

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
		"retention.ms":        &retentionMs,
	}

	responses, err := cl.CreateTopics(
		ctx,
		opts.partitions,
		opts.replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, res.Err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(topic string, opts topicOpts) {
	fmt.Printf(`initializing topics...
	- %q (partitions=%d, replication=%d, retention=%s)

`,
		topic, opts.partitions, opts.replicationFactor, opts.retention,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
