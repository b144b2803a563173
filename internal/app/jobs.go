package app

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// initJobs starts the periodic state-snapshot job. The whole store is one
// small file of three collections, so a full JSON dump is the cheapest
// recovery artifact.
func (a *Application) initJobs() {
	spec := a.appConfig.Store.BackupCron
	if spec == "" {
		return
	}
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc))
	if _, err := a.sched.AddFunc(spec, a.backupState); err != nil {
		zap.S().Errorf("invalid backup_cron %q: %v", spec, err)
		return
	}
	a.sched.Start()
}

type stateBackup struct {
	Products interface{} `json:"products"`
	Orders   interface{} `json:"orders"`
	SiteName string      `json:"siteName"`
	TakenAt  string      `json:"takenAt"`
}

func (a *Application) backupState() {
	dir := filepath.Join(a.appConfig.System.Workdir, "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.L().Error("backup dir", zap.Error(err))
		return
	}

	var dump stateBackup
	products, err := a.store.Products()
	if err != nil {
		zap.L().Error("backup read", zap.Error(err))
		return
	}
	orders, err := a.store.Orders()
	if err != nil {
		zap.L().Error("backup read", zap.Error(err))
		return
	}
	siteName, err := a.store.SiteName()
	if err != nil {
		zap.L().Error("backup read", zap.Error(err))
		return
	}
	dump.Products = products
	dump.Orders = orders
	dump.SiteName = siteName
	dump.TakenAt = time.Now().UTC().Format(time.RFC3339)

	raw, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		zap.L().Error("backup encode", zap.Error(err))
		return
	}
	name := filepath.Join(dir, "state-"+time.Now().Format("20060102T150405")+".json")
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		zap.L().Error("backup write", zap.Error(err))
		return
	}
	zap.L().Info("state backup written", zap.String("file", name))

	a.pruneBackups(dir)
}

func (a *Application) pruneBackups(dir string) {
	keep := a.appConfig.Store.BackupKeep
	if keep <= 0 {
		keep = 7
	}
	entries, err := filepath.Glob(filepath.Join(dir, "state-*.json"))
	if err != nil || len(entries) <= keep {
		return
	}
	sort.Strings(entries)
	for _, old := range entries[:len(entries)-keep] {
		_ = os.Remove(old)
	}
}
