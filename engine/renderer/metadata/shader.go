package metadata

/** @brief A programmable pipeline stage. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

/** @brief Pipeline state toggled on the device at startup. */
type Capability int

const (
	CapabilityBlend Capability = iota
	CapabilityDepthTest
	CapabilityStencilTest
)

/** @brief Strings reported by the driver. */
type DeviceInfo struct {
	Version  string
	Vendor   string
	Renderer string
}
