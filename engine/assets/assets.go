package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima-cube/engine/assets/loaders"
	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

// pending changes beyond this are dropped until the loop drains them
const changeBufferSize = 16

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager resolves asset names relative to a root directory and loads
// them through the loader registered for their type. With hot reload on, it
// watches the tree and reports modified files on Changes.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() *AssetManager {
	return &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		changes: make(chan string, changeBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Initialize indexes every known asset under assetsDir. When watch is set the
// directory tree is also watched for modifications.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return fmt.Errorf("%w: assets directory %s", core.ErrResourceNotFound, assetsDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", core.ErrResourceNotFound, assetsDir)
	}
	am.root = assetsDir

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = fsWatch
		go am.start()
	} else {
		close(am.stopped)
	}

	return am.watchRecursive(assetsDir)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads name, a path relative to the assets directory, with the
// loader registered for resourceType.
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}

	path := am.Path(name)
	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[name] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	core.LogDebug("loaded %s asset %s (%d bytes)", resourceType, name, res.DataSize)
	return res, nil
}

// LoadShaderSource returns the GLSL text of name.
func (am *AssetManager) LoadShaderSource(name string) (string, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeShader, nil)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

// LoadImage decodes name with its rows flipped bottom-up for texture upload.
func (am *AssetManager) LoadImage(name string) (*metadata.ImageResourceData, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ImageResourceData), nil
}

func (am *AssetManager) Path(name string) string {
	return filepath.Join(am.root, filepath.FromSlash(name))
}

// Info reports what is known about name.
func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info, ok
}

// Changes delivers the names of assets modified on disk. Nothing is sent
// unless Initialize was called with watch set.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// Close stops the watcher. Changes is closed once it has exited.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrAlreadyClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	if am.fsnotify == nil {
		close(am.changes)
		return nil
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer func() {
		close(am.changes)
		close(am.stopped)
	}()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if name, ok := am.handleFileEvent(e.Name); ok {
					am.publish(name)
				}
			}
			// Can't stat a deleted path, so drop it from both the index and the watch list
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				if err := am.fsnotify.Remove(e.Name); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
					core.LogDebug("unwatching %s: %s", e.Name, err)
				}
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// publish never blocks the watcher; a full buffer drops the change.
func (am *AssetManager) publish(name string) {
	select {
	case am.changes <- name:
	default:
		core.LogWarn("dropping change notification for %s", name)
	}
}

// watchRecursive indexes files under path and watches every directory when a
// watcher is running.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			am.handleFileEvent(walkPath)
			return nil
		}
		if am.fsnotify == nil {
			return nil
		}
		return am.fsnotify.Add(walkPath)
	})
}

// handleFileEvent indexes path and returns its asset name.
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return "", false
	}
	name, err := am.name(path)
	if err != nil {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[name]
	info.Path = path
	info.Type = assetType
	am.assets[name] = info
	return name, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, err := am.name(path)
	if err != nil {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
}

func (am *AssetManager) name(path string) (string, error) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}
