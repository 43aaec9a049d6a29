package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief a 4x4 matrix, stored column-major so Data can be handed to the
 * graphics API as 16 contiguous floats without transposing.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief A single cube vertex as laid out in the vertex buffer:
 * position followed by texture coordinate.
 */
type VertexPosUV struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The texture coordinate of the vertex. */
	U, V float32
}
