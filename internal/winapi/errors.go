package winapi

import "errors"

var (
	errNoMonitors    = errors.New("winapi: no monitors enumerated")
	errAppBarFailed  = errors.New("winapi: appbar registration failed")
	errWorkerNotFound = errors.New("winapi: wallpaper worker window not found")
)
