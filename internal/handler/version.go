package handler

import (
	"cmp"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo is the /version body
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Set with -ldflags "-X github.com/navelogic/rpgbot/internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// HandleVersion reports build information. Values not injected at link time
// come from VERSION and the module's embedded VCS stamp.
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(serviceName string) http.HandlerFunc {
	info := buildInfo(serviceName)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

func buildInfo(serviceName string) VersionInfo {
	info := VersionInfo{
		Service:   serviceName,
		Version:   cmp.Or(nonDev(Version), os.Getenv("VERSION"), "dev"),
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = cmp.Or(info.GitCommit, s.Value)
		case "vcs.time":
			info.BuildTime = cmp.Or(info.BuildTime, s.Value)
		}
	}
	return info
}

func nonDev(v string) string {
	if v == "dev" {
		return ""
	}
	return v
}
