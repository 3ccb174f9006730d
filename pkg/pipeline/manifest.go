// manifest.go — The fixed set of assets the app ships.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/xob0t/stonegen/pkg/generator"
	"github.com/xob0t/stonegen/pkg/scene"
	"github.com/xob0t/stonegen/pkg/synth"
)

// Kind separates raster assets from sounds.
type Kind int

const (
	Image Kind = iota
	Sound
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Sound:
		return "sound"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "icons"/"images" and "sounds".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "icons", "icon", "images", "image":
		return Image, nil
	case "sounds", "sound":
		return Sound, nil
	default:
		return 0, fmt.Errorf("unknown asset kind %q: use icons or sounds", s)
	}
}

// Asset is one output file. Path is slash-separated and relative to the
// output root.
type Asset struct {
	Name     string
	Path     string
	Kind     Kind
	Renderer generator.Renderer
}

// SceneAsset renders k at w x h.
func SceneAsset(name, path string, k scene.Kind, w, h int) Asset {
	return Asset{
		Name: name,
		Path: path,
		Kind: Image,
		Renderer: generator.RendererFunc(func() (generator.Config, error) {
			c, err := scene.Render(k, w, h)
			if err != nil {
				return generator.Config{}, err
			}
			return generator.Config{Image: c}, nil
		}),
	}
}

// SoundAsset synthesizes e at its shipped duration.
func SoundAsset(path string, e synth.Effect, sampleRate int) Asset {
	return Asset{
		Name: e.String(),
		Path: path,
		Kind: Sound,
		Renderer: generator.RendererFunc(func() (generator.Config, error) {
			samples, err := synth.Synthesize(e, sampleRate, e.Duration())
			if err != nil {
				return generator.Config{}, err
			}
			return generator.Config{Samples: samples, SampleRate: sampleRate}, nil
		}),
	}
}

// Placeholder sounds are 0.1s of silence at 8kHz.
const (
	placeholderRate     = 8000
	placeholderDuration = 0.1
)

// SilentAsset is a placeholder sound at path.
func SilentAsset(name, path string) Asset {
	return Asset{
		Name: name,
		Path: path,
		Kind: Sound,
		Renderer: generator.RendererFunc(func() (generator.Config, error) {
			samples, err := synth.Silence(placeholderRate, placeholderDuration)
			if err != nil {
				return generator.Config{}, err
			}
			return generator.Config{Samples: samples, SampleRate: placeholderRate}, nil
		}),
	}
}

func soundPath(e synth.Effect) string {
	return "assets/sounds/" + e.String() + ".wav"
}

// DefaultManifest lists every shipped asset.
func DefaultManifest() []Asset {
	assets := []Asset{
		SceneAsset("app_icon", "assets/icon/app_icon.png", scene.AppIcon, 1024, 1024),
		SceneAsset("app_icon_foreground", "assets/icon/app_icon_foreground.png", scene.Foreground, 1024, 1024),
		SceneAsset("splash_logo", "assets/splash/splash_logo.png", scene.Splash, 512, 512),
		SceneAsset("store_icon", "store_assets/app_icon_512.png", scene.AppIcon, 512, 512),
		SceneAsset("feature_graphic", "store_assets/feature_graphic.png", scene.Feature, scene.FeatureWidth, scene.FeatureHeight),
	}
	for _, e := range synth.Effects {
		assets = append(assets, SoundAsset(soundPath(e), e, synth.DefaultSampleRate))
	}
	return assets
}

// PlaceholderManifest lists silent stand-ins for every sound.
func PlaceholderManifest() []Asset {
	var assets []Asset
	for _, e := range synth.Effects {
		assets = append(assets, SilentAsset(e.String(), soundPath(e)))
	}
	return assets
}

// Filter returns the assets of kind k, preserving order.
func Filter(assets []Asset, k Kind) []Asset {
	var out []Asset
	for _, a := range assets {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// OutputPath joins root and the asset's relative path.
func (a Asset) OutputPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(a.Path))
}
