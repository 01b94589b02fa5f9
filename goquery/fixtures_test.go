package goquery_test

const liveQuestionHTML = `<!DOCTYPE html>
<html>
<head><link rel="canonical" href="https://example.com/p/100"></head>
<body>
<span itemscope itemtype="http://schema.org/Question">
<div class="post-body">
<div class="tags"><a class="tag" href="/topic/1"> politics </a><a class="tag" href="/topic/2">history</a></div>
<div class="post-title"><span> A question </span></div>
<span itemprop="dateCreated" content="2019-01-18T16:30:00+08:00"></span>
<div class="post-text-detail"><p>Question body</p></div>
<span class="upvote"><span class="count-wrap">12</span></span>
<span class="downvote"><span class="count-wrap">3</span></span>
<div class="post-mod-agree">12人赞同 5人关注</div>
<span class="view-comment" count="2"></span>
</div>
</span>
<div class="post-answer-wrap">
<div class="post-body-wrap" data-mainpost="101">
<div class="post-detail-user-box"><img src="https://example.com/static/upload/avatar/1.jpg"></div>
<span class="post-user-name" uid="7"><a class="aw-user-name" href="/people/alice">alice</a></span>
<span class="post-user-intro" title=" hello "></span>
<span itemprop="dateCreated" content="2019-01-19T00:00:00Z"></span>
<div class="post-text-detail-column"><p>Answer one</p></div>
<span class="upvote"><span class="count-wrap">4</span></span>
<span class="downvote"><span class="count-wrap"></span></span>
<span class="view-comment" count="x"></span>
</div>
<div class="post-body-wrap" data-mainpost="102">
<span class="post-user-name"><a class="aw-user-name">bob</a></span>
<div class="post-text-detail"><p>Answer two</p></div>
</div>
</div>
</body>
</html>`

const liveArticleHTML = `<!DOCTYPE html>
<html>
<body>
<div class="post-topic-detail-title"> 专栏文章 </div>
<span itemscope itemtype="http://schema.org/Question">
<div class="post-body">
<div class="tags"><a class="tag">essays</a></div>
<div class="post-title"><span>An essay</span></div>
<div class="post-detail-user-box"><img src="/static/upload/avatar/9.png"></div>
<span class="post-user-name" uid="9"><a class="aw-user-name">dave</a></span>
<span itemprop="dateCreated" content="2019-03-01T12:00:00Z"></span>
<div class="post-text-detail"><p>Essay body</p></div>
<span class="upvote"><span class="count-wrap">8</span></span>
</div>
</span>
</body>
</html>`

const archiveQuestionHTML = `<!DOCTYPE html>
<html>
<body>
<div>
<div>
<div><a href="/topic/1">politics</a><a href="/topic/2">history</a></div>
<div>Archived question</div>
<div>12 人浏览</div>
<div><a name="200"></a><div><div>7人赞同 3人关注</div><div><div><div><p>Question body</p></div></div></div><div></div><div>4 条评论</div></div></div>
</div>
<div>
<div><div></div><div><a name="201"></a><div><div><span><a href="/people/carol">carol</a><span title=" intro "></span></span></div><div>2人赞同</div><div><div><div><p>Answer body</p></div></div></div><div></div><div>0 条评论</div></div></div></div>
<div><div></div><div><a name="202"></a><div><div><span><a href="/people/erin">erin</a></span></div><div>0人赞同</div><div><div><div><p>Second answer</p></div></div></div><div></div><div>1 条评论</div></div></div></div>
</div>
</div>
</body>
</html>`

const archiveArticleHTML = `<!DOCTYPE html>
<html>
<body>
<div>
<div><div><h3>专栏文章 · essays</h3></div></div>
<div>
<div><a href="/topic/3">essays</a></div>
<div></div>
<div>An archived essay</div>
<div>dave</div>
<div><a name="300"></a><div><div>9人赞过</div><div><div><div><p>Essay body</p></div></div></div><div></div><div>6 条评论</div></div></div>
</div>
</div>
</body>
</html>`

const archiveUntaggedQuestionHTML = `<!DOCTYPE html>
<html>
<body>
<div>
<div>
<div>Untagged question</div>
<div>5 人浏览</div>
<div><a name="210"></a><div><div>1人赞同 0人关注</div><div><div><div><p>Body</p></div></div></div><div></div><div>0 条评论</div></div></div>
</div>
</div>
</body>
</html>`
