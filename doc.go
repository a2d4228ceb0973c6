// Package keyreduce reduces the number of keyframes of densely sampled
// animation curves while keeping their reconstruction within a bounded
// visual error.
//
// It was designed for curves recorded from continuous motion, where every
// frame carries a keyframe, but it works on any keyframed animation.
//
// # Curves and targets
//
// A [Curve] is a sequence of [Keyframe] values sorted by time. Between two
// keyframes, a curve follows a cubic Hermite spline defined by the
// keyframes' tangents.
//
// A [Target] is one animated quantity, made up of a set of curves
// ([Channels]). Two kinds of channel sets exist:
//
//   - [PoseChannels] animate a position and an orientation with seven
//     curves, X through RotW. X is the lead curve: its keyframe times are
//     the sample points of the whole set.
//   - [ScalarChannels] animate a single value within a range.
//
// Targets are owned by the caller. [Track] is a simple in-memory
// implementation.
//
// # Reduction
//
// A [Reducer] processes each target in two passes.
//
// The resampling pass averages the keyframes into windows of a fixed width
// (1/[Config.SampleRate] seconds), producing at most one keyframe per
// window. Scalar values are averaged weighted by the time each keyframe is
// held; orientations are averaged as quaternions, aligned to the window's
// first orientation.
//
// The refinement pass starts from the first and last keyframes only and
// greedily copies back the resampled keyframe that the current reduction
// reproduces worst, until every keyframe is reproduced within
// [Config.Threshold] or an iteration cap proportional to the animation's
// duration is reached. Errors are normalized: for poses, one unit is
// [Config.PositionUnit] of distance plus [Config.RotationUnit] degrees of
// rotation; for scalars, it is [Config.ValueUnit] of the target's range.
//
// The first and last keyframes of every curve are always kept.
//
// # Cooperative execution
//
// [Reducer.Steps] returns an iterator that performs the reduction one small
// step at a time, so that it can be spread over the frames of an interactive
// application. All edits happen on private copies; a target's curves are
// replaced once, when its reduction completes. A caller that stops iterating
// leaves the remaining targets untouched. [Reducer.Run] drains the iterator
// synchronously.
package keyreduce
