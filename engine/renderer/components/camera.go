package components

import (
	"github.com/spaghettifunk/anima-cube/engine/math"
)

/**
 * @brief A camera that only translates. It looks down -Z from its position.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
}

func NewCamera(position math.Vec3) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.SetPosition(position)
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3(0, 0, 0)
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

// GetView moves the world opposite to the camera.
func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4Translation(math.NewVec3(-c.Position.X, -c.Position.Y, -c.Position.Z))
		c.IsDirty = false
	}
	return c.ViewMatrix
}
