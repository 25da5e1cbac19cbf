package main

const helpPlayback = `
p     play/pause
>     next track
<     previous track
-/=   volume down/volume up
,/.   seek -10/+10 seconds
l     toggle queue looping
a     add files to queue
`

const helpPageQueue = `
ENTER play the selected track
D     remove all tracks from queue
`
