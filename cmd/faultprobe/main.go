// Command faultprobe runs deliberately faulting probes on a worker pool and
// reports how each fault was translated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	xgxfault "github.com/xgx-io/xgx-fault"
	"github.com/xgx-io/xgx-fault/faultmetrics"
	"github.com/xgx-io/xgx-fault/logfault"
	"github.com/xgx-io/xgx-fault/workpool"
)

var Build string
var Version string

func main() {
	var cPath, only string
	var showVersion, showBuild, showMetrics bool

	flag.StringVar(&cPath, "config", "", "path to configuration file")
	flag.StringVar(&only, "probe", "", "comma separated probes to run ("+strings.Join(probeNames(), ", ")+")")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.BoolVar(&showBuild, "build", false, "show build")
	flag.BoolVar(&showMetrics, "metrics", false, "print fault counters on exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Version: %s\n", Version)
		os.Exit(0)
	}
	if showBuild {
		fmt.Printf("Build: %s\n", Build)
		os.Exit(0)
	}

	var conf Config = defaultConfig()
	if cPath != "" {
		c, err := FromYAML(cPath)
		if err != nil {
			log.WithError(err).Fatal("Error reading configuration file")
		}
		conf = c
	}

	level, err := log.ParseLevel(conf.LogLevel())
	if err != nil {
		log.WithError(err).Fatal("Bad log level")
	}
	log.SetLevel(level)
	log.AddHook(logfault.NewHook())
	xgxfault.SetLogger(log.StandardLogger())

	names := conf.Probes()
	if only != "" {
		names = strings.Split(only, ",")
	}
	tasks := make([]workpool.Task, 0, len(names))
	for _, n := range names {
		p, ok := probes[strings.TrimSpace(n)]
		if !ok {
			log.WithField("probe", n).Fatal("Unknown probe")
		}
		tasks = append(tasks, workpool.Task(p))
	}

	metrics := faultmetrics.NewCollector(conf.MetricsNamespace())
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics)

	opts := []workpool.Option{workpool.WithMetrics(metrics), workpool.WithLogger(log.StandardLogger())}
	if conf.LockOSThread() {
		opts = append(opts, workpool.WithLockOSThread())
	}
	pool := workpool.New(conf.PoolName(), conf.Workers(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = pool.Run(ctx, tasks...)
	log.WithFields(log.Fields{
		"probes":  len(tasks),
		"faulted": countFaults(err),
	}).Info("Probes finished")
	if err != nil {
		log.Debugf("%+v", err)
	}

	if showMetrics {
		if err := printMetrics(reg); err != nil {
			log.WithError(err).Error("Gather metrics failed")
		}
	}
}

func countFaults(err error) int {
	return len(xgxfault.Faults(err))
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Printf("%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
